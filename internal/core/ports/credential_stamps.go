package ports

import (
	"context"
	"time"
)

// CredentialStamps records when an account's password last changed, so that
// tokens issued before that moment can be rejected.
type CredentialStamps interface {
	MarkPasswordChanged(ctx context.Context, userID string, at time.Time) error
	// PasswordChangedAt returns the recorded change time, or the zero time
	// when no change has been recorded (or the record expired).
	PasswordChangedAt(ctx context.Context, userID string) (time.Time, error)
}
