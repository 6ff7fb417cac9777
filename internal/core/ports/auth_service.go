package ports

import (
	"context"

	"github.com/99minutos/service-catalog/internal/core/domain"
)

// TokenVerifier validates a signed token and returns its subject identifier.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
