package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
)

// Worker consumes audit events and forwards them to the webhook emitter.
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	emitter ports.WebhookEmitter
	log     zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, emitter ports.WebhookEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	w := &Worker{srv: srv, mux: asynq.NewServeMux(), emitter: emitter, log: log}
	w.mux.HandleFunc(TypeAuditEvent, w.handleAuditEvent)
	return w
}

// handleAuditEvent returns an error only for retryable failures; a bad payload is skipped.
func (w *Worker) handleAuditEvent(ctx context.Context, t *asynq.Task) error {
	var ev ports.AuditEvent
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		w.log.Error().Err(err).Msg("audit task payload invalid")
		return fmt.Errorf("decode audit event: %v: %w", err, asynq.SkipRetry)
	}
	if err := w.emitter.Emit(ctx, ev); err != nil {
		w.log.Warn().Err(err).Str("event", ev.Event).Msg("webhook delivery failed")
		return err
	}
	w.log.Debug().Str("event", ev.Event).Str("subject_id", ev.SubjectID).Msg("audit event delivered")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
