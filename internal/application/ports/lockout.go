package ports

import "context"

// LoginLockoutStore throttles password guessing against a single username.
type LoginLockoutStore interface {
	// IsLocked reports an active lock and how many seconds remain on it.
	IsLocked(ctx context.Context, username string) (locked bool, retryAfterSeconds int)
	// RecordFailure counts a wrong password and locks the username once the threshold is hit.
	RecordFailure(ctx context.Context, username string)
	// RecordSuccess resets the count after a correct password.
	RecordSuccess(ctx context.Context, username string)
}
