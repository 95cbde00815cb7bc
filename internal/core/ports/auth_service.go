package ports

import (
	"context"

	"github.com/simplecrm/crm-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, fullName, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
