package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/service-catalog/internal/core/domain"
	"github.com/99minutos/service-catalog/internal/core/ports"
)

const defaultSortField = "name"

type CatalogService struct {
	repo   ports.ServiceRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewCatalogService(repo ports.ServiceRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// ListServices returns every active service matching the input. Inactive
// services are never listed.
func (s *CatalogService) ListServices(ctx context.Context, input ports.ListServicesInput) ([]*domain.Service, error) {
	filter := ports.ListServicesFilter{
		ActiveOnly: true,
		Search:     input.Search,
		SortBy:     input.SortBy,
		SortDesc:   input.SortOrder == "desc",
	}
	if input.Category != ports.CategoryAll {
		filter.Category = input.Category
	}
	if filter.SortBy == "" {
		filter.SortBy = defaultSortField
	}

	services, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []*domain.Service{}
	}
	return services, nil
}

// GetService returns a service by id whether or not it is active.
func (s *CatalogService) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) CreateService(ctx context.Context, input ports.CreateServiceInput) (*domain.Service, error) {
	now := s.now()
	svc := &domain.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
		Category:    input.Category,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.logger.Info().Str("service_id", svc.ID).Str("name", svc.Name).Msg("service created")
	return svc, nil
}

// UpdateService applies a partial update; see domain.Service.Apply for the
// merge rules.
func (s *CatalogService) UpdateService(ctx context.Context, id string, patch domain.ServicePatch) (*domain.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.Apply(patch)
	svc.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}

	s.logger.Info().Str("service_id", svc.ID).Bool("is_active", svc.IsActive).Msg("service updated")
	return svc, nil
}

// DeleteService soft-deletes a service. Deleting an inactive service again
// succeeds and leaves it inactive.
func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	svc.IsActive = false
	svc.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, svc); err != nil {
		return err
	}

	s.logger.Info().Str("service_id", svc.ID).Msg("service deactivated")
	return nil
}
