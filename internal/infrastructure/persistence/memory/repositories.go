package memory

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// Repositories read their own unit's staged rows first, then committed rows.
// Entities cross the boundary as copies via State and Restore*, never shared pointers.

type userRepo struct {
	uow *unitOfWork
}

func (r *userRepo) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	if st, ok := r.uow.users.get(id); ok {
		return restoreUser(st.state)
	}
	state, ok := r.uow.store.userByID(id)
	if !ok {
		return nil, nil
	}
	return restoreUser(state)
}

func (r *userRepo) GetByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	for _, id := range r.uow.users.order {
		if st, ok := r.uow.users.get(id); ok && st.state.Username == username {
			return restoreUser(st.state)
		}
	}
	state, ok := r.uow.store.userByUsername(username)
	if !ok {
		return nil, nil
	}
	return restoreUser(state)
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username domain.Username) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}

// Add catches duplicates visible to this unit; Commit repeats the check against everything committed since.
func (r *userRepo) Add(ctx context.Context, user *domain.User) error {
	if err := r.uow.writable("insert user"); err != nil {
		return err
	}
	state := user.State()
	if existing, err := r.GetByUsername(ctx, state.Username); err != nil {
		return err
	} else if existing != nil {
		return domerrors.ErrUsernameAlreadyExists
	}
	r.uow.users.put(state.ID, opInsert, state)
	return nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	if err := r.uow.writable("update user"); err != nil {
		return err
	}
	r.uow.users.put(user.ID(), opUpdate, user.State())
	return nil
}

type projectRepo struct {
	uow *unitOfWork
}

func (r *projectRepo) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	if st, ok := r.uow.projects.get(id); ok {
		return restoreProject(st.state)
	}
	state, ok := r.uow.store.projectByID(id)
	if !ok {
		return nil, nil
	}
	return restoreProject(state)
}

func (r *projectRepo) Add(ctx context.Context, project *domain.Project) error {
	if err := r.uow.writable("insert project"); err != nil {
		return err
	}
	r.uow.projects.put(project.ID(), opInsert, project.State())
	return nil
}

func (r *projectRepo) Update(ctx context.Context, project *domain.Project) error {
	if err := r.uow.writable("update project"); err != nil {
		return err
	}
	r.uow.projects.put(project.ID(), opUpdate, project.State())
	return nil
}

type taskRepo struct {
	uow *unitOfWork
}

func (r *taskRepo) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	if st, ok := r.uow.tasks.get(id); ok {
		if st.op == opDelete {
			return nil, nil
		}
		return restoreTask(st.state)
	}
	state, ok := r.uow.store.taskByID(id)
	if !ok {
		return nil, nil
	}
	return restoreTask(state)
}

func (r *taskRepo) Add(ctx context.Context, task *domain.Task) error {
	if err := r.uow.writable("insert task"); err != nil {
		return err
	}
	r.uow.tasks.put(task.ID(), opInsert, task.State())
	return nil
}

func (r *taskRepo) Update(ctx context.Context, task *domain.Task) error {
	if err := r.uow.writable("update task"); err != nil {
		return err
	}
	r.uow.tasks.put(task.ID(), opUpdate, task.State())
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id domain.TaskID) error {
	if err := r.uow.writable("delete task"); err != nil {
		return err
	}
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domerrors.ErrTaskNotFound
	}
	r.uow.tasks.put(id, opDelete, t.State())
	return nil
}

func restoreUser(s domain.UserState) (*domain.User, error) {
	u, err := domain.RestoreUser(s)
	return u, domerrors.Infrastructure("restore user", err)
}

func restoreProject(s domain.ProjectState) (*domain.Project, error) {
	p, err := domain.RestoreProject(s)
	return p, domerrors.Infrastructure("restore project", err)
}

func restoreTask(s domain.TaskState) (*domain.Task, error) {
	t, err := domain.RestoreTask(s)
	return t, domerrors.Infrastructure("restore task", err)
}

var (
	_ ports.UserRepository    = (*userRepo)(nil)
	_ ports.ProjectRepository = (*projectRepo)(nil)
	_ ports.TaskRepository    = (*taskRepo)(nil)
)
