package ports

import "context"

// UnitOfWork is one write transaction for one use-case execution. Callers defer Rollback right after
// Begin; Rollback after a successful Commit is a no-op. Nothing is committed implicitly.
type UnitOfWork interface {
	Users() UserRepository
	Projects() ProjectRepository
	Tasks() TaskRepository
	// Commit makes every staged write durable atomically, or none of them.
	Commit(ctx context.Context) error
	// Rollback discards staged writes. Safe to call more than once and after Commit.
	Rollback(ctx context.Context) error
}

// UnitOfWorkFactory begins units of work.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
