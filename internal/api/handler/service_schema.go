package handler

import "time"

// errorResponse is the envelope returned on every 4xx/5xx response.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// messageResponse acknowledges an operation without returning a record.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Request types ---

// createServiceRequest uses a truthiness rule: a zero price
// fails "required" just like a missing one.
type createServiceRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price"       validate:"required"`
	Duration    *float64 `json:"duration"`
	Category    string   `json:"category"`
}

// updateServiceRequest uses pointers so absent fields can be told apart
// from zero values.
type updateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *float64 `json:"duration"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
}

// --- Response types ---
// Transport-owned so the JSON contract is not coupled to domain changes.

type serviceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    *float64  `json:"duration,omitempty"`
	Category    string    `json:"category,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type listServicesResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Services []serviceResponse `json:"services"`
}

type getServiceResponse struct {
	Success bool            `json:"success"`
	Service serviceResponse `json:"service"`
}

type mutateServiceResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Service serviceResponse `json:"service"`
}
