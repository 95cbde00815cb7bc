package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/simplecrm/crm-system/internal/core/domain"
	"github.com/simplecrm/crm-system/internal/core/ports"
)

// seedNames are the well-known bootstrap accounts whose display names are
// fixed up at startup. Accounts that do not exist are skipped; running the
// seed twice is harmless.
var seedNames = map[string]string{
	"admin@example.com": "Администратор",
	"user@example.com":  "Пользователь",
}

// Seed applies the startup fixups to the bootstrap accounts.
func Seed(ctx context.Context, users ports.UserRepository, log zerolog.Logger) error {
	for email, fullName := range seedNames {
		user, err := users.FindByEmail(ctx, email)
		if errors.Is(err, domain.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if user.FullName == fullName {
			continue
		}

		user.FullName = fullName
		user.UpdatedAt = time.Now().UTC()
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		log.Info().Str("email", email).Str("full_name", fullName).Msg("seeded account name")
	}
	return nil
}
