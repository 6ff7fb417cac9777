package ports

import (
	"context"

	"github.com/99minutos/service-catalog/internal/core/domain"
)

// UserLookup resolves a user by id without loading the password hash.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// UserDirectory answers whether an account still exists without loading it.
type UserDirectory interface {
	UserLookup
	Exists(ctx context.Context, id string) (bool, error)
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	UserDirectory
	// FindByEmail loads the full record, password hash included.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
