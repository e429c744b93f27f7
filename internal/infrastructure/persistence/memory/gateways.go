package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
)

// QueryGateway serves the read side from committed rows only, ordered by insertion.
type QueryGateway struct {
	store *Store
}

func NewQueryGateway(store *Store) *QueryGateway {
	return &QueryGateway{store: store}
}

func (g *QueryGateway) ListUsers(ctx context.Context, filter ports.UserFilter) ([]ports.UserView, int, error) {
	g.store.mu.RLock()
	rows := make([]userRow, 0, len(g.store.users))
	for _, row := range g.store.users {
		if filter.IsActive != nil && row.state.Active != *filter.IsActive {
			continue
		}
		rows = append(rows, row)
	}
	g.store.mu.RUnlock()

	slices.SortFunc(rows, func(a, b userRow) int { return cmp.Compare(a.seq, b.seq) })
	page := window(rows, filter.Offset, filter.Limit)
	views := make([]ports.UserView, 0, len(page))
	for _, row := range page {
		s := row.state
		views = append(views, ports.UserView{
			ID:        s.ID.String(),
			Username:  s.Username.String(),
			Email:     s.Email.String(),
			Role:      string(s.Role),
			IsActive:  s.Active,
			CreatedAt: s.CreatedAt,
		})
	}
	return views, len(rows), nil
}

func (g *QueryGateway) ListProjects(ctx context.Context, filter ports.ProjectFilter) ([]ports.ProjectView, int, error) {
	g.store.mu.RLock()
	rows := make([]projectRow, 0, len(g.store.projects))
	for _, row := range g.store.projects {
		if filter.OwnerID != "" && row.state.OwnerID.String() != filter.OwnerID {
			continue
		}
		rows = append(rows, row)
	}
	counts := make(map[string]int)
	for _, row := range g.store.tasks {
		counts[row.state.ProjectID.String()]++
	}
	g.store.mu.RUnlock()

	slices.SortFunc(rows, func(a, b projectRow) int { return cmp.Compare(a.seq, b.seq) })
	page := window(rows, filter.Offset, filter.Limit)
	views := make([]ports.ProjectView, 0, len(page))
	for _, row := range page {
		s := row.state
		views = append(views, ports.ProjectView{
			ID:        s.ID.String(),
			Name:      s.Name.String(),
			OwnerID:   s.OwnerID.String(),
			TaskCount: counts[s.ID.String()],
			CreatedAt: s.CreatedAt,
		})
	}
	return views, len(rows), nil
}

func (g *QueryGateway) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]ports.TaskView, int, error) {
	g.store.mu.RLock()
	rows := make([]taskRow, 0)
	for _, row := range g.store.tasks {
		s := row.state
		if filter.ProjectID != "" && s.ProjectID.String() != filter.ProjectID {
			continue
		}
		if filter.Status != "" && string(s.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(s.Priority) != filter.Priority {
			continue
		}
		rows = append(rows, row)
	}
	g.store.mu.RUnlock()

	slices.SortFunc(rows, func(a, b taskRow) int { return cmp.Compare(a.seq, b.seq) })
	page := window(rows, filter.Offset, filter.Limit)
	views := make([]ports.TaskView, 0, len(page))
	for _, row := range page {
		s := row.state
		views = append(views, ports.TaskView{
			ID:        s.ID.String(),
			ProjectID: s.ProjectID.String(),
			Title:     s.Title.String(),
			Priority:  string(s.Priority),
			Status:    string(s.Status),
			CreatorID: s.CreatorID.String(),
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return views, len(rows), nil
}

// window applies offset and limit; a non-positive limit returns everything after offset.
func window[T any](rows []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

var (
	_ ports.UserQueryGateway    = (*QueryGateway)(nil)
	_ ports.ProjectQueryGateway = (*QueryGateway)(nil)
	_ ports.TaskQueryGateway    = (*QueryGateway)(nil)
)
