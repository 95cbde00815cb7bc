package ports

import (
	"context"

	"github.com/simplecrm/crm-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create persists a new account. ErrEmailTaken when the email is in use.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update replaces full name, email and password hash. ErrEmailTaken when
	// the new email collides with another account.
	Update(ctx context.Context, user *domain.User) error
}
