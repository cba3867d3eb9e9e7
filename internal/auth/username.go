package auth

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Generated usernames are always eight digits.
const (
	minUsername int64 = 10000000
	maxUsername int64 = 99999999
)

// randomUsername returns a uniformly random eight-digit username.
func randomUsername() int64 {
	return minUsername + rand.Int64N(maxUsername-minUsername+1)
}

// uniqueUsername draws candidates from next until one is not taken.
// Each candidate is checked against the live users table.
func (a *PasswordAuthenticator) uniqueUsername(ctx context.Context) (int64, error) {
	for {
		candidate := a.nextUsername()

		taken, err := a.storage.UsernameExists(ctx, candidate)
		if err != nil {
			return 0, fmt.Errorf("failed to check username: %w", err)
		}
		if !taken {
			return candidate, nil
		}

		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}
}
