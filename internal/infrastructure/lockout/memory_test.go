package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreLocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(3, 60)
	s.now = func() time.Time { return now }

	s.RecordFailure(ctx, "alice99")
	s.RecordFailure(ctx, "Alice99")
	locked, _ := s.IsLocked(ctx, "alice99")
	assert.False(t, locked)

	s.RecordFailure(ctx, "alice99")
	locked, retry := s.IsLocked(ctx, "alice99")
	assert.True(t, locked)
	assert.Equal(t, 60, retry)

	now = now.Add(61 * time.Second)
	locked, _ = s.IsLocked(ctx, "alice99")
	assert.False(t, locked)

	// one failure after the cooldown does not relock
	s.RecordFailure(ctx, "alice99")
	locked, _ = s.IsLocked(ctx, "alice99")
	assert.False(t, locked)
}

func TestMemoryStoreSuccessClears(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2, 60)
	s.RecordFailure(ctx, "bob")
	s.RecordSuccess(ctx, "bob")
	s.RecordFailure(ctx, "bob")
	locked, _ := s.IsLocked(ctx, "bob")
	assert.False(t, locked)
}

func TestMemoryStoreDisabled(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0, 60)
	for i := 0; i < 10; i++ {
		s.RecordFailure(ctx, "carol")
	}
	locked, _ := s.IsLocked(ctx, "carol")
	assert.False(t, locked)
}

func TestMemoryStoreRetryAfterRoundsUp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(1, 10)
	s.now = func() time.Time { return now }

	s.RecordFailure(ctx, " Dave ")
	now = now.Add(9*time.Second + 500*time.Millisecond)
	locked, retry := s.IsLocked(ctx, "dave")
	assert.True(t, locked)
	assert.Equal(t, 1, retry)

	now = now.Add(time.Second)
	locked, retry = s.IsLocked(ctx, "dave")
	assert.False(t, locked)
	assert.Zero(t, retry)
	assert.Empty(t, s.byName, "elapsed locks are dropped")
}

func TestMemoryStoreDefaultCooldown(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(1, 0)
	s.now = func() time.Time { return now }

	s.RecordFailure(ctx, "erin")
	locked, retry := s.IsLocked(ctx, "erin")
	assert.True(t, locked)
	assert.Equal(t, int(defaultCooldown/time.Second), retry)
}
