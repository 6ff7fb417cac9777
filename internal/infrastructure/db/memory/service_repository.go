// Package memory provides in-process implementations of the repository ports.
// They back the STORE_DRIVER=memory mode and the handler/service tests.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/99minutos/service-catalog/internal/core/domain"
	"github.com/99minutos/service-catalog/internal/core/ports"
)

// ServiceRepository implements ports.ServiceRepository over a map.
type ServiceRepository struct {
	mu    sync.RWMutex
	seq   int
	order []string
	byID  map[string]*domain.Service

	// Err, when set, is returned by every call.
	Err error
}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{byID: make(map[string]*domain.Service)}
}

// Count returns the number of stored services, active or not.
func (r *ServiceRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *ServiceRepository) List(_ context.Context, f ports.ListServicesFilter) ([]*domain.Service, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(f.Search)
	matched := make([]*domain.Service, 0, len(r.order))
	for _, id := range r.order {
		s := r.byID[id]
		if f.ActiveOnly && !s.IsActive {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Description), search) {
			continue
		}
		matched = append(matched, cloneService(s))
	}

	slices.SortStableFunc(matched, func(a, b *domain.Service) int {
		c := compareField(a, b, f.SortBy)
		if f.SortDesc {
			return -c
		}
		return c
	})
	return matched, nil
}

func (r *ServiceRepository) FindByID(_ context.Context, id string) (*domain.Service, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return cloneService(s), nil
}

func (r *ServiceRepository) Create(_ context.Context, s *domain.Service) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	s.ID = fmt.Sprintf("svc_%06d", r.seq)
	r.byID[s.ID] = cloneService(s)
	r.order = append(r.order, s.ID)
	return nil
}

func (r *ServiceRepository) Save(_ context.Context, s *domain.Service) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; !ok {
		return domain.ErrServiceNotFound
	}
	r.byID[s.ID] = cloneService(s)
	return nil
}

// compareField orders services by the named field. Unknown fields compare
// equal, leaving insertion order in place.
func compareField(a, b *domain.Service, field string) int {
	switch field {
	case "id", "_id":
		return cmp.Compare(a.ID, b.ID)
	case "name":
		return cmp.Compare(a.Name, b.Name)
	case "description":
		return cmp.Compare(a.Description, b.Description)
	case "price":
		return cmp.Compare(a.Price, b.Price)
	case "duration":
		return cmp.Compare(durationOf(a), durationOf(b))
	case "category":
		return cmp.Compare(a.Category, b.Category)
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return 0
	}
}

func durationOf(s *domain.Service) float64 {
	if s.Duration == nil {
		return 0
	}
	return *s.Duration
}

func cloneService(s *domain.Service) *domain.Service {
	clone := *s
	if s.Duration != nil {
		d := *s.Duration
		clone.Duration = &d
	}
	return &clone
}
