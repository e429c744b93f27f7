package queue

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
)

// NoopEnqueuer drops audit events when Redis is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueAuditEvent(ctx context.Context, ev ports.AuditEvent) error {
	return nil
}

var _ ports.AuditEnqueuer = (*NoopEnqueuer)(nil)
