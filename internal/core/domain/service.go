package domain

import (
	"errors"
	"time"
)

var ErrServiceNotFound = errors.New("service not found")

// Service is a catalog entry offered to customers.
type Service struct {
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

// ServicePatch carries the fields supplied to an update. A nil pointer means
// the field was absent from the request.
type ServicePatch struct {
	Name        *string
	Description *string
	Price       *float64
	Duration    *float64
	Category    *string
	IsActive    *bool
}

// Apply merges p into s. Name, description, price, duration and category are
// only replaced by non-empty, non-zero values, so a price of 0 or an empty
// category never overwrites the stored value. IsActive is applied whenever
// it was supplied, false included.
func (s *Service) Apply(p ServicePatch) {
	if p.Name != nil && *p.Name != "" {
		s.Name = *p.Name
	}
	if p.Description != nil && *p.Description != "" {
		s.Description = *p.Description
	}
	if p.Price != nil && *p.Price != 0 {
		s.Price = *p.Price
	}
	if p.Duration != nil && *p.Duration != 0 {
		d := *p.Duration
		s.Duration = &d
	}
	if p.Category != nil && *p.Category != "" {
		s.Category = *p.Category
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}
