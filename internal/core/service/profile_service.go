package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplecrm/crm-system/internal/api/metrics"
	"github.com/simplecrm/crm-system/internal/core/domain"
	"github.com/simplecrm/crm-system/internal/core/ports"
)

const minPasswordLen = 6

// ProfileService implements the profile use cases of an authenticated
// principal: viewing, editing the display name and login email, and changing
// the password.
type ProfileService struct {
	users  ports.UserRepository
	stamps ports.CredentialStamps
	logger zerolog.Logger
}

func NewProfileService(users ports.UserRepository, stamps ports.CredentialStamps, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, stamps: stamps, logger: logger}
}

// Get returns the principal's account. ErrUserNotFound when the session
// references an account that no longer exists.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Update replaces the full name and email. The email is also the login
// identifier; a collision with another account surfaces as ErrEmailTaken
// untranslated.
func (s *ProfileService) Update(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	verr := domain.NewValidationError()
	if strings.TrimSpace(input.Email) == "" {
		verr.Add("email", "email is required")
	}
	if !verr.Empty() {
		return nil, verr
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	if user.FullName == "" {
		user.FullName = domain.DefaultFullName
	}
	user.Email = input.Email
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return user, nil
}

// ChangePassword verifies the old password and replaces the credential.
// The local constraints (length, confirmation) are checked before any
// account lookup, so a malformed form never touches storage.
func (s *ProfileService) ChangePassword(ctx context.Context, userID string, input ports.ChangePasswordInput) error {
	verr := domain.NewValidationError()
	if input.OldPassword == "" {
		verr.Add("old_password", "old password is required")
	}
	if len(input.NewPassword) < minPasswordLen {
		verr.Add("new_password", "new password must be at least 6 characters")
	}
	if input.ConfirmPassword != input.NewPassword {
		verr.Add("confirm_password", "password confirmation does not match")
	}
	if !verr.Empty() {
		metrics.PasswordChangesTotal.WithLabelValues("failure").Inc()
		return verr
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)) != nil {
		metrics.PasswordChangesTotal.WithLabelValues("failure").Inc()
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	// Invalidate tokens issued before the change. The change itself already
	// succeeded, so a failed stamp is logged rather than surfaced.
	if err := s.stamps.MarkPasswordChanged(ctx, userID, time.Now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to record password change stamp")
	}

	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}
