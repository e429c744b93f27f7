package ports

import (
	"context"
	"time"
)

// AuditEvent describes one committed write, for logging or webhooks.
type AuditEvent struct {
	Event      string    `json:"event"` // user.created, task.created, task.status_changed, ...
	ActorID    string    `json:"actor_id,omitempty"`
	SubjectID  string    `json:"subject_id"`
	ProjectID  string    `json:"project_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WebhookEmitter sends audit events to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event AuditEvent) error
}
