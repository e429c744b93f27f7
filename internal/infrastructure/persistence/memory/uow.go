package memory

import (
	"context"
	"errors"
	"slices"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

var errFinished = errors.New("unit of work already finished")

type op int

const (
	opInsert op = iota + 1
	opUpdate
	opDelete
)

type staged[S any] struct {
	op    op
	state S
}

// changeSet keeps staged rows plus their staging order so Commit applies them deterministically.
type changeSet[K comparable, S any] struct {
	rows  map[K]*staged[S]
	order []K
}

func newChangeSet[K comparable, S any]() changeSet[K, S] {
	return changeSet[K, S]{rows: make(map[K]*staged[S])}
}

func (c *changeSet[K, S]) put(id K, o op, state S) {
	if cur, ok := c.rows[id]; ok {
		// an update of a row inserted in this unit stays an insert
		if cur.op == opInsert && o == opUpdate {
			o = opInsert
		}
		if cur.op == opInsert && o == opDelete {
			delete(c.rows, id)
			return
		}
		cur.op, cur.state = o, state
		return
	}
	c.rows[id] = &staged[S]{op: o, state: state}
	if !slices.Contains(c.order, id) {
		c.order = append(c.order, id)
	}
}

func (c *changeSet[K, S]) get(id K) (*staged[S], bool) {
	s, ok := c.rows[id]
	return s, ok
}

type unitOfWork struct {
	store    *Store
	users    changeSet[domain.UserID, domain.UserState]
	projects changeSet[domain.ProjectID, domain.ProjectState]
	tasks    changeSet[domain.TaskID, domain.TaskState]
	done     bool
}

func newUnitOfWork(store *Store) *unitOfWork {
	return &unitOfWork{
		store:    store,
		users:    newChangeSet[domain.UserID, domain.UserState](),
		projects: newChangeSet[domain.ProjectID, domain.ProjectState](),
		tasks:    newChangeSet[domain.TaskID, domain.TaskState](),
	}
}

func (u *unitOfWork) Users() ports.UserRepository       { return &userRepo{uow: u} }
func (u *unitOfWork) Projects() ports.ProjectRepository { return &projectRepo{uow: u} }
func (u *unitOfWork) Tasks() ports.TaskRepository       { return &taskRepo{uow: u} }

// Commit validates every staged change against committed rows and applies all of them, or none.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return domerrors.Infrastructure("commit", errFinished)
	}
	if err := ctx.Err(); err != nil {
		return domerrors.Infrastructure("commit", err)
	}
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := u.check(); err != nil {
		return err
	}
	for _, id := range u.users.order {
		if st, ok := u.users.get(id); ok {
			row := s.users[id]
			if st.op == opInsert {
				s.seq++
				row.seq = s.seq
			}
			row.state = st.state
			s.users[id] = row
		}
	}
	for _, id := range u.projects.order {
		if st, ok := u.projects.get(id); ok {
			row := s.projects[id]
			if st.op == opInsert {
				s.seq++
				row.seq = s.seq
			}
			row.state = st.state
			s.projects[id] = row
		}
	}
	for _, id := range u.tasks.order {
		st, ok := u.tasks.get(id)
		if !ok {
			continue
		}
		if st.op == opDelete {
			delete(s.tasks, id)
			continue
		}
		row := s.tasks[id]
		if st.op == opInsert {
			s.seq++
			row.seq = s.seq
		}
		row.state = st.state
		s.tasks[id] = row
	}
	u.done = true
	return nil
}

// check plays the role of the storage constraints. Caller holds store.mu.
func (u *unitOfWork) check() error {
	s := u.store
	for _, id := range u.users.order {
		st, ok := u.users.get(id)
		if !ok {
			continue
		}
		if _, exists := s.users[id]; exists != (st.op == opUpdate) {
			if exists {
				return domerrors.Infrastructure("insert user", errors.New("duplicate id"))
			}
			return domerrors.ErrUserNotFound
		}
		for otherID, row := range s.users {
			if otherID == id {
				continue
			}
			if row.state.Username == st.state.Username {
				return domerrors.ErrUsernameAlreadyExists
			}
			if !st.state.Email.IsZero() && row.state.Email == st.state.Email {
				return domerrors.ErrEmailAlreadyExists
			}
		}
	}
	for _, id := range u.projects.order {
		st, ok := u.projects.get(id)
		if !ok {
			continue
		}
		if _, exists := s.projects[id]; exists != (st.op == opUpdate) {
			if exists {
				return domerrors.Infrastructure("insert project", errors.New("duplicate id"))
			}
			return domerrors.ErrProjectNotFound
		}
		if _, ok := s.users[st.state.OwnerID]; !ok {
			if staged, ok := u.users.get(st.state.OwnerID); !ok || staged.op != opInsert {
				return domerrors.ErrUserNotFound
			}
		}
	}
	for _, id := range u.tasks.order {
		st, ok := u.tasks.get(id)
		if !ok {
			continue
		}
		_, exists := s.tasks[id]
		switch {
		case st.op == opInsert && exists:
			return domerrors.Infrastructure("insert task", errors.New("duplicate id"))
		case st.op != opInsert && !exists:
			return domerrors.ErrTaskNotFound
		}
		if st.op == opDelete {
			continue
		}
		if _, ok := s.projects[st.state.ProjectID]; !ok {
			if staged, ok := u.projects.get(st.state.ProjectID); !ok || staged.op != opInsert {
				return domerrors.ErrProjectNotFound
			}
		}
	}
	return nil
}

// Rollback discards staged changes. After Commit it is a no-op.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	u.users = newChangeSet[domain.UserID, domain.UserState]()
	u.projects = newChangeSet[domain.ProjectID, domain.ProjectState]()
	u.tasks = newChangeSet[domain.TaskID, domain.TaskState]()
	return nil
}

func (u *unitOfWork) writable(op string) error {
	if u.done {
		return domerrors.Infrastructure(op, errFinished)
	}
	return nil
}

var _ ports.UnitOfWork = (*unitOfWork)(nil)
