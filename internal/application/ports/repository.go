package ports

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

// Repositories accept and return entities only. A missing row is (nil, nil).
// Writes are staged on the owning UnitOfWork and become durable on Commit.
// Unique and foreign-key violations arrive already translated to domain errors.

// UserReader loads users outside a unit of work (identity resolution, reads before authorization).
type UserReader interface {
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByUsername(ctx context.Context, username domain.Username) (*domain.User, error)
}

// UserRepository defines persistence for users.
type UserRepository interface {
	UserReader
	// ExistsByUsername is a fast-path check only; the storage unique constraint is authoritative.
	ExistsByUsername(ctx context.Context, username domain.Username) (bool, error)
	Add(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

// ProjectReader loads a project outside a unit of work, for read-side authorization.
type ProjectReader interface {
	GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error)
}

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	ProjectReader
	Add(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
}

// TaskRepository defines persistence for tasks.
type TaskRepository interface {
	GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	Add(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	// Delete removes the row. Tasks are the only entity that is hard-deleted.
	Delete(ctx context.Context, id domain.TaskID) error
}
