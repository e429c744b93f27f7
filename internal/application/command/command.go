// Package command holds the write-side use cases. Each runs in one unit of work:
// authorize, load or validate, mutate or construct, stage, commit.
package command

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// caller resolves the authenticated user. A nil provider is treated as anonymous.
func caller(ctx context.Context, idp ports.IdentityProvider) (*domain.User, error) {
	if idp == nil {
		return nil, domerrors.ErrUnauthenticated
	}
	return idp.CurrentUser(ctx)
}

func requireAdmin(ctx context.Context, idp ports.IdentityProvider) (*domain.User, error) {
	user, err := caller(ctx, idp)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, domerrors.ErrForbidden
	}
	return user, nil
}

// rollback is deferred right after Begin. It runs detached from ctx so a cancelled request
// still releases its transaction; after Commit it is a no-op.
func rollback(ctx context.Context, uow ports.UnitOfWork) {
	_ = uow.Rollback(context.WithoutCancel(ctx))
}

// auditor forwards committed writes to the queue. Best effort: the write is already durable.
type auditor struct {
	queue ports.AuditEnqueuer
}

func (a auditor) emit(ctx context.Context, event, actorID, subjectID, projectID string) {
	if a.queue == nil {
		return
	}
	_ = a.queue.EnqueueAuditEvent(context.WithoutCancel(ctx), ports.AuditEvent{
		Event:      event,
		ActorID:    actorID,
		SubjectID:  subjectID,
		ProjectID:  projectID,
		OccurredAt: time.Now().UTC(),
	})
}
