package handler

import (
	"github.com/99minutos/service-catalog/internal/core/domain"
	"github.com/99minutos/service-catalog/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createServiceRequest) ports.CreateServiceInput {
	return ports.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Category:    req.Category,
	}
}

func toPatch(req updateServiceRequest) domain.ServicePatch {
	return domain.ServicePatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Category:    req.Category,
		IsActive:    req.IsActive,
	}
}

// --- Domain → HTTP response ---

func toServiceResponse(s *domain.Service) serviceResponse {
	return serviceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.Duration,
		Category:    s.Category,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
}

func toServiceResponses(services []*domain.Service) []serviceResponse {
	out := make([]serviceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, toServiceResponse(s))
	}
	return out
}
