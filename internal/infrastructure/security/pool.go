package security

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

// PooledHasher bounds how many hashes run at once. Callers beyond the limit wait on the
// semaphore, honoring ctx, instead of piling CPU-bound work onto the scheduler.
type PooledHasher struct {
	next domain.PasswordHasher
	sem  *semaphore.Weighted
}

// NewPooledHasher wraps next with at most workers concurrent operations. workers <= 0 uses GOMAXPROCS.
func NewPooledHasher(next domain.PasswordHasher, workers int) *PooledHasher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &PooledHasher{next: next, sem: semaphore.NewWeighted(int64(workers))}
}

func (p *PooledHasher) Hash(ctx context.Context, password string) (domain.PasswordHash, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return domain.PasswordHash{}, err
	}
	defer p.sem.Release(1)
	return p.next.Hash(ctx, password)
}

func (p *PooledHasher) Verify(ctx context.Context, password string, hash domain.PasswordHash) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)
	return p.next.Verify(ctx, password, hash)
}

var _ domain.PasswordHasher = (*PooledHasher)(nil)
