package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// ChangeTaskStatusInput changes any of status, priority and title in one transaction.
// Empty fields are left alone; at least one must be set.
type ChangeTaskStatusInput struct {
	TaskID   string
	Status   string
	Priority string
	Title    string
}

type ChangeTaskStatusResult struct {
	Task *domain.Task
}

// ChangeTaskStatus moves a task along the status graph and edits its priority or title.
type ChangeTaskStatus struct {
	uow   ports.UnitOfWorkFactory
	audit auditor
}

func NewChangeTaskStatus(uow ports.UnitOfWorkFactory, audit ports.AuditEnqueuer) *ChangeTaskStatus {
	return &ChangeTaskStatus{uow: uow, audit: auditor{queue: audit}}
}

func (uc *ChangeTaskStatus) Execute(ctx context.Context, idp ports.IdentityProvider, input ChangeTaskStatusInput) (*ChangeTaskStatusResult, error) {
	actor, err := caller(ctx, idp)
	if err != nil {
		return nil, err
	}
	taskID, err := domain.ParseTaskID(input.TaskID)
	if err != nil {
		return nil, err
	}
	if input.Status == "" && input.Priority == "" && input.Title == "" {
		return nil, domerrors.NewValidationError("status", "one of status, priority or title must be set")
	}
	var status domain.TaskStatus
	if input.Status != "" {
		if status, err = domain.ParseTaskStatus(input.Status); err != nil {
			return nil, err
		}
	}
	var title domain.TaskTitle
	if input.Title != "" {
		if title, err = domain.NewTaskTitle(input.Title); err != nil {
			return nil, err
		}
	}
	var priority domain.Priority
	if input.Priority != "" {
		if priority, err = domain.ParsePriority(input.Priority); err != nil {
			return nil, err
		}
	}

	uow, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, uow)

	task, project, err := loadWritableTask(ctx, uow, actor, taskID)
	if err != nil {
		return nil, err
	}
	if status != "" {
		if err := task.ChangeStatus(status); err != nil {
			return nil, err
		}
	}
	if title != (domain.TaskTitle{}) {
		if err := task.Retitle(title); err != nil {
			return nil, err
		}
	}
	if priority != "" {
		if err := task.ChangePriority(priority); err != nil {
			return nil, err
		}
	}
	if err := uow.Tasks().Update(ctx, task); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	event := "task.updated"
	if status != "" {
		event = "task.status_changed"
	}
	uc.audit.emit(ctx, event, actor.ID().String(), task.ID().String(), project.ID().String())
	return &ChangeTaskStatusResult{Task: task}, nil
}

// loadWritableTask loads a task and its project, failing with not-found or forbidden.
func loadWritableTask(ctx context.Context, uow ports.UnitOfWork, actor *domain.User, id domain.TaskID) (*domain.Task, *domain.Project, error) {
	task, err := uow.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, domerrors.ErrTaskNotFound
	}
	project, err := uow.Projects().GetByID(ctx, task.ProjectID())
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, domerrors.ErrProjectNotFound
	}
	if !project.CanBeWrittenBy(actor) {
		return nil, nil, domerrors.ErrForbidden
	}
	return task, project, nil
}
