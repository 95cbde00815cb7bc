package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// stampTTL must outlive the longest token TTL so a stale token can never
// outwait its own invalidation record.
const stampTTL = 48 * time.Hour

// CredentialStamps records password-change times in Redis so tokens issued
// before a change can be rejected.
// Key format: pwd_changed_at:<user_id>
type CredentialStamps struct {
	client *redis.Client
}

// NewCredentialStamps creates a CredentialStamps wrapping the given client.
func NewCredentialStamps(client *redis.Client) *CredentialStamps {
	return &CredentialStamps{client: client}
}

// MarkPasswordChanged records that the account's password changed at the
// given time.
func (s *CredentialStamps) MarkPasswordChanged(ctx context.Context, userID string, at time.Time) error {
	return s.client.Set(ctx, s.key(userID), strconv.FormatInt(at.Unix(), 10), stampTTL).Err()
}

// PasswordChangedAt returns the recorded change time, or the zero time when
// none is recorded.
func (s *CredentialStamps) PasswordChangedAt(ctx context.Context, userID string) (time.Time, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("credential stamp lookup: %w", err)
	}

	ts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("credential stamp decode: %w", err)
	}
	return time.Unix(ts, 0).UTC(), nil
}

func (s *CredentialStamps) key(userID string) string {
	return "pwd_changed_at:" + userID
}
