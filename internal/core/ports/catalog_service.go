package ports

import (
	"context"

	"github.com/99minutos/service-catalog/internal/core/domain"
)

// CategoryAll is the category sentinel that disables category filtering.
const CategoryAll = "all"

// ListServicesInput carries the raw list query parameters.
type ListServicesInput struct {
	Search    string
	Category  string
	SortBy    string
	SortOrder string // "asc" | "desc"
}

// CreateServiceInput carries the fields of a new service.
type CreateServiceInput struct {
	Name        string
	Description string
	Price       float64
	Duration    *float64
	Category    string
}

// CatalogService defines use-case operations for catalog services.
type CatalogService interface {
	ListServices(ctx context.Context, input ListServicesInput) ([]*domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
	CreateService(ctx context.Context, input CreateServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, id string, patch domain.ServicePatch) (*domain.Service, error)
	DeleteService(ctx context.Context, id string) error
}
