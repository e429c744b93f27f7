package domain

import "context"

// PasswordHasher hashes and verifies raw passwords. Implementations may block on a bounded worker
// pool and must honor ctx while waiting. Constant-time comparison is the implementation's job.
type PasswordHasher interface {
	Hash(ctx context.Context, rawPassword string) (PasswordHash, error)
	Verify(ctx context.Context, rawPassword string, hash PasswordHash) (bool, error)
}
