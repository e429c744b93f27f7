package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

type DeleteTaskInput struct {
	TaskID string
}

// DeleteTask hard-deletes a task from a project the caller can write to.
type DeleteTask struct {
	uow   ports.UnitOfWorkFactory
	audit auditor
}

func NewDeleteTask(uow ports.UnitOfWorkFactory, audit ports.AuditEnqueuer) *DeleteTask {
	return &DeleteTask{uow: uow, audit: auditor{queue: audit}}
}

func (uc *DeleteTask) Execute(ctx context.Context, idp ports.IdentityProvider, input DeleteTaskInput) error {
	actor, err := caller(ctx, idp)
	if err != nil {
		return err
	}
	taskID, err := domain.ParseTaskID(input.TaskID)
	if err != nil {
		return err
	}

	uow, err := uc.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, uow)

	task, project, err := loadWritableTask(ctx, uow, actor, taskID)
	if err != nil {
		return err
	}
	if err := uow.Tasks().Delete(ctx, task.ID()); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}
	uc.audit.emit(ctx, "task.deleted", actor.ID().String(), task.ID().String(), project.ID().String())
	return nil
}
