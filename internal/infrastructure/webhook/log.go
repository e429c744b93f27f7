package webhook

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
)

// LogEmitter stands in when WEBHOOK_URL is not set: events go to the log at debug level
// and delivery always succeeds, so queued tasks drain instead of retrying.
type LogEmitter struct {
	log zerolog.Logger
}

func NewLogEmitter(log zerolog.Logger) *LogEmitter {
	return &LogEmitter{log: log}
}

func (e *LogEmitter) Emit(ctx context.Context, event ports.AuditEvent) error {
	e.log.Debug().
		Str("event", event.Event).
		Str("actor_id", event.ActorID).
		Str("subject_id", event.SubjectID).
		Str("project_id", event.ProjectID).
		Time("occurred_at", event.OccurredAt).
		Msg("audit event")
	return nil
}

var _ ports.WebhookEmitter = (*LogEmitter)(nil)
