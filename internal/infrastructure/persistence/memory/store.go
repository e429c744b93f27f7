// Package memory is an in-process persistence adapter: repositories, query gateways and a unit of
// work over mutex-guarded maps. It backs the server when no DATABASE_URL is configured, and the tests.
package memory

import (
	"context"
	"sync"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

type userRow struct {
	seq   int64
	state domain.UserState
}

type projectRow struct {
	seq   int64
	state domain.ProjectState
}

type taskRow struct {
	seq   int64
	state domain.TaskState
}

// Store holds committed rows. Units of work stage changes privately and apply them under mu on Commit.
type Store struct {
	mu       sync.RWMutex
	seq      int64
	users    map[domain.UserID]userRow
	projects map[domain.ProjectID]projectRow
	tasks    map[domain.TaskID]taskRow
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[domain.UserID]userRow),
		projects: make(map[domain.ProjectID]projectRow),
		tasks:    make(map[domain.TaskID]taskRow),
	}
}

// Users reads committed users outside any unit of work.
func (s *Store) Users() ports.UserReader { return &userRepo{uow: newUnitOfWork(s)} }

// Projects reads committed projects outside any unit of work.
func (s *Store) Projects() ports.ProjectReader { return &projectRepo{uow: newUnitOfWork(s)} }

// UnitOfWorkFactory begins units of work against s.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Begin(ctx context.Context) (ports.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newUnitOfWork(f.store), nil
}

var _ ports.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

func (s *Store) userByID(id domain.UserID) (domain.UserState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.users[id]
	return row.state, ok
}

func (s *Store) userByUsername(username domain.Username) (domain.UserState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.users {
		if row.state.Username == username {
			return row.state, true
		}
	}
	return domain.UserState{}, false
}

func (s *Store) projectByID(id domain.ProjectID) (domain.ProjectState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.projects[id]
	return row.state, ok
}

func (s *Store) taskByID(id domain.TaskID) (domain.TaskState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.tasks[id]
	return row.state, ok
}
