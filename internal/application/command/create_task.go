package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type CreateTaskInput struct {
	ProjectID string
	Title     string
	Priority  string // optional, defaults to MEDIUM
}

type CreateTaskResult struct {
	Task *domain.Task
}

// CreateTask adds a task to a project the caller can write to.
type CreateTask struct {
	uow   ports.UnitOfWorkFactory
	audit auditor
}

func NewCreateTask(uow ports.UnitOfWorkFactory, audit ports.AuditEnqueuer) *CreateTask {
	return &CreateTask{uow: uow, audit: auditor{queue: audit}}
}

func (uc *CreateTask) Execute(ctx context.Context, idp ports.IdentityProvider, input CreateTaskInput) (*CreateTaskResult, error) {
	actor, err := caller(ctx, idp)
	if err != nil {
		return nil, err
	}
	projectID, err := domain.ParseProjectID(input.ProjectID)
	if err != nil {
		return nil, err
	}
	title, err := domain.NewTaskTitle(input.Title)
	if err != nil {
		return nil, err
	}
	priority, err := domain.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	uow, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, uow)

	project, err := uow.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if !project.CanBeWrittenBy(actor) {
		return nil, domerrors.ErrForbidden
	}
	task, err := domain.NewTask(project, title, priority, actor.ID())
	if err != nil {
		return nil, err
	}
	if err := uow.Tasks().Add(ctx, task); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	uc.audit.emit(ctx, "task.created", actor.ID().String(), task.ID().String(), project.ID().String())
	return &CreateTaskResult{Task: task}, nil
}
