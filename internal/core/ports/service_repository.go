package ports

import (
	"context"

	"github.com/99minutos/service-catalog/internal/core/domain"
)

// ListServicesFilter carries the query parameters for listing services.
type ListServicesFilter struct {
	ActiveOnly bool   // restrict to isActive = true
	Search     string // optional: case-insensitive substring on name or description
	Category   string // optional: exact match; empty = no filter
	SortBy     string // field name; empty = name
	SortDesc   bool
}

// ServiceRepository defines persistence operations for catalog services.
type ServiceRepository interface {
	List(ctx context.Context, filter ListServicesFilter) ([]*domain.Service, error)
	// FindByID returns domain.ErrServiceNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	// Create persists s and assigns its ID.
	Create(ctx context.Context, s *domain.Service) error
	// Save replaces the stored document identified by s.ID.
	Save(ctx context.Context, s *domain.Service) error
}
