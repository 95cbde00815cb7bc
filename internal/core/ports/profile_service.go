package ports

import (
	"context"

	"github.com/simplecrm/crm-system/internal/core/domain"
)

// UpdateProfileInput carries the editable profile fields. Email is also the
// login identifier; uniqueness is enforced by the user repository.
type UpdateProfileInput struct {
	FullName string
	Email    string
}

// ChangePasswordInput carries the password-change form. NewPassword and
// ConfirmPassword are checked locally before any credential lookup happens.
type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// ProfileService defines the profile use cases of the authenticated
// principal. The principal's user id is threaded explicitly; there is no
// ambient "current user".
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, input ChangePasswordInput) error
}
