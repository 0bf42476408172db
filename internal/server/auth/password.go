package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultHashCost is the bcrypt cost used for new password hashes.
const DefaultHashCost = 8

// PasswordHasher hashes and verifies passwords. Verify is the only way to
// compare a password with a stored hash.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) ([]byte, error)
	Verify(ctx context.Context, password string, hash []byte) (bool, error)
}

// BcryptHasher is a PasswordHasher with a fixed bcrypt cost. At most workers
// hashes run at once; further callers wait for a slot or for ctx to end.
type BcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

func NewBcryptHasher(cost, workers int) *BcryptHasher {
	if cost == 0 {
		cost = DefaultHashCost
	}
	if workers <= 0 {
		workers = 1
	}
	return &BcryptHasher{cost: cost, sem: semaphore.NewWeighted(int64(workers))}
}

// Hash returns a freshly salted bcrypt hash of password. Empty passwords and
// passwords over bcrypt's 72-byte limit are rejected with ErrorValidation.
func (h *BcryptHasher) Hash(ctx context.Context, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: empty password", common.ErrorValidation)
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// Verify reports whether password matches hash. A mismatch is (false, nil);
// a corrupt hash is an error.
func (h *BcryptHasher) Verify(ctx context.Context, password string, hash []byte) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}
