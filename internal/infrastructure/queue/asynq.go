package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
)

const (
	TypeAuditEvent = "audit:event"

	auditMaxRetry = 5
)

// TaskEnqueuer publishes audit events to Redis through asynq.
type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

// NewAuditTask builds the asynq task for ev. Exposed for the worker tests.
func NewAuditTask(ev ports.AuditEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAuditEvent, payload, asynq.MaxRetry(auditMaxRetry), asynq.Timeout(30*time.Second)), nil
}

func (q *TaskEnqueuer) EnqueueAuditEvent(ctx context.Context, ev ports.AuditEvent) error {
	task, err := NewAuditTask(ev)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("event", ev.Event).Str("subject_id", ev.SubjectID).Msg("enqueue audit event failed")
		return err
	}
	return nil
}

var _ ports.AuditEnqueuer = (*TaskEnqueuer)(nil)
