package postgres

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/db"
)

type TaskRepository struct {
	q *db.Queries
}

func NewTaskRepository(q *db.Queries) *TaskRepository {
	return &TaskRepository{q: q}
}

func (r *TaskRepository) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	t, err := r.q.GetTaskByID(ctx, id.UUID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translate("select task", err)
	}
	return dbTaskToDomain(t)
}

func (r *TaskRepository) Add(ctx context.Context, task *domain.Task) error {
	s := task.State()
	return translate("insert task", r.q.CreateTask(ctx, db.CreateTaskParams{
		ID:        s.ID.UUID,
		ProjectID: s.ProjectID.UUID,
		Title:     s.Title.String(),
		Priority:  string(s.Priority),
		Status:    string(s.Status),
		CreatorID: s.CreatorID.UUID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}))
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	s := task.State()
	n, err := r.q.UpdateTask(ctx, db.UpdateTaskParams{
		ID:        s.ID.UUID,
		Title:     s.Title.String(),
		Priority:  string(s.Priority),
		Status:    string(s.Status),
		UpdatedAt: s.UpdatedAt,
	})
	if err != nil {
		return translate("update task", err)
	}
	if n == 0 {
		return domerrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id domain.TaskID) error {
	n, err := r.q.DeleteTask(ctx, id.UUID)
	if err != nil {
		return translate("delete task", err)
	}
	if n == 0 {
		return domerrors.ErrTaskNotFound
	}
	return nil
}

func dbTaskToDomain(t db.Task) (*domain.Task, error) {
	title, err := domain.NewTaskTitle(t.Title)
	if err != nil {
		return nil, domerrors.Infrastructure("decode task", err)
	}
	task, err := domain.RestoreTask(domain.TaskState{
		ID:        domain.TaskIDFrom(t.ID),
		ProjectID: domain.ProjectIDFrom(t.ProjectID),
		Title:     title,
		Priority:  domain.Priority(t.Priority),
		Status:    domain.TaskStatus(t.Status),
		CreatorID: domain.UserIDFrom(t.CreatorID),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	})
	return task, domerrors.Infrastructure("decode task", err)
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
