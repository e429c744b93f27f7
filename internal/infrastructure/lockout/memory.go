package lockout

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
)

const defaultCooldown = 15 * time.Minute

// attempts is the failure history of one username.
type attempts struct {
	count       int
	lockedUntil time.Time
}

func (a *attempts) locked(now time.Time) bool { return now.Before(a.lockedUntil) }

// expired reports whether a lock was set and its cooldown has run out.
func (a *attempts) expired(now time.Time) bool {
	return !a.lockedUntil.IsZero() && !a.locked(now)
}

// MemoryStore counts failed logins per username in process memory. Usernames are
// compared case-insensitively, so "Alice" and "alice" share one counter. Reaching
// the threshold locks the username for the cooldown; the first failure after that
// starts counting from zero. Counters are lost on restart and not shared between
// replicas.
type MemoryStore struct {
	mu        sync.Mutex
	byName    map[string]*attempts
	threshold int
	cooldown  time.Duration
	now       func() time.Time
}

// NewMemoryStore locks a username after threshold consecutive failures. A threshold
// of zero or less turns lockout off. A non-positive cooldown falls back to 15 minutes.
func NewMemoryStore(threshold, cooldownSeconds int) *MemoryStore {
	cooldown := time.Duration(cooldownSeconds) * time.Second
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &MemoryStore{
		byName:    make(map[string]*attempts),
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

func normalize(username string) string { return strings.ToLower(strings.TrimSpace(username)) }

func (s *MemoryStore) enabled() bool { return s.threshold > 0 }

// IsLocked returns the whole seconds left on the lock, rounded up so a locked
// username never reports zero.
func (s *MemoryStore) IsLocked(ctx context.Context, username string) (bool, int) {
	if !s.enabled() {
		return false, 0
	}
	name := normalize(username)
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.byName[name]
	if a == nil {
		return false, 0
	}
	now := s.now()
	if !a.locked(now) {
		if a.expired(now) {
			delete(s.byName, name)
		}
		return false, 0
	}
	return true, int(math.Ceil(a.lockedUntil.Sub(now).Seconds()))
}

func (s *MemoryStore) RecordFailure(ctx context.Context, username string) {
	if !s.enabled() {
		return
	}
	name := normalize(username)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a := s.byName[name]
	if a == nil || a.expired(now) {
		a = &attempts{}
		s.byName[name] = a
	}
	a.count++
	if a.count >= s.threshold {
		a.lockedUntil = now.Add(s.cooldown)
	}
}

// RecordSuccess forgets every failure recorded for username.
func (s *MemoryStore) RecordSuccess(ctx context.Context, username string) {
	if !s.enabled() {
		return
	}
	s.mu.Lock()
	delete(s.byName, normalize(username))
	s.mu.Unlock()
}

var _ ports.LoginLockoutStore = (*MemoryStore)(nil)
