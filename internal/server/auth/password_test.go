package auth

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt.MinCost keeps these tests fast; cost itself is checked separately.
func newTestHasher() *BcryptHasher {
	return NewBcryptHasher(bcrypt.MinCost, 2)
}

func TestHash_NeverPlaintextAndSalted(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	a, err := h.Hash(ctx, "secret")
	require.NoError(t, err)
	b, err := h.Hash(ctx, "secret")
	require.NoError(t, err)

	assert.NotEqual(t, []byte("secret"), a)
	assert.False(t, bytes.Contains(a, []byte("secret")))
	assert.NotEqual(t, a, b, "fresh salt per call")
}

func TestHash_UsesConfiguredCost(t *testing.T) {
	h := NewBcryptHasher(DefaultHashCost, 1)

	hash, err := h.Hash(context.Background(), "pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, 8, cost)
}

func TestVerify_MatchAndMismatch(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	hash, err := h.Hash(ctx, "correct")
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "correct", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, wrong := range []string{"wrong", "Correct", "correct ", ""} {
		ok, err = h.Verify(ctx, wrong, hash)
		require.NoError(t, err)
		assert.False(t, ok, "password %q must not verify", wrong)
	}
}

func TestVerify_CorruptHashIsError(t *testing.T) {
	ok, err := newTestHasher().Verify(context.Background(), "pw", []byte("not-a-bcrypt-hash"))
	require.Error(t, err)
	assert.False(t, ok)
}

func TestHash_RejectsEmptyAndOverlong(t *testing.T) {
	h := newTestHasher()

	_, err := h.Hash(context.Background(), "")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = h.Hash(context.Background(), strings.Repeat("a", 73))
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestHash_WaitsForSlotAndHonoursContext(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 1)
	require.True(t, h.sem.TryAcquire(1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.Hash(ctx, "pw")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = h.Verify(ctx, "pw", []byte("x"))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	h.sem.Release(1)
	_, err = h.Hash(context.Background(), "pw")
	require.NoError(t, err)
}

func TestHash_ConcurrentCallers(t *testing.T) {
	h := newTestHasher()
	var wg sync.WaitGroup
	errs := make(chan error, 8)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := h.Hash(context.Background(), "pw")
			if err != nil {
				errs <- err
				return
			}
			if ok, err := h.Verify(context.Background(), "pw", hash); err != nil || !ok {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent hash failed: %v", err)
	}
}
