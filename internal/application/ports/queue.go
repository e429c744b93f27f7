package ports

import "context"

// AuditEnqueuer hands audit events to the background queue. Called only after a commit succeeds;
// a failure here never undoes the write, so implementations log their own errors.
type AuditEnqueuer interface {
	EnqueueAuditEvent(ctx context.Context, event AuditEvent) error
}
