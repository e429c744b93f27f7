package postgres

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/db"
)

// QueryGateway serves list projections straight from SQL. Count and page run as two statements
// outside a transaction, so under concurrent writes they may disagree by the rows that changed between them.
type QueryGateway struct {
	q *db.Queries
}

func NewQueryGateway(q *db.Queries) *QueryGateway {
	return &QueryGateway{q: q}
}

func (g *QueryGateway) ListUsers(ctx context.Context, filter ports.UserFilter) ([]ports.UserView, int, error) {
	offset, err := pageOffset(filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	var active pgtype.Bool
	if filter.IsActive != nil {
		active = pgtype.Bool{Bool: *filter.IsActive, Valid: true}
	}
	total, err := g.q.CountUsers(ctx, active)
	if err != nil {
		return nil, 0, translate("count users", err)
	}
	rows, err := g.q.ListUsers(ctx, db.ListUsersParams{IsActive: active, Limit: pageLimit(filter.Limit), Offset: offset})
	if err != nil {
		return nil, 0, translate("list users", err)
	}
	views := make([]ports.UserView, 0, len(rows))
	for _, u := range rows {
		views = append(views, ports.UserView{
			ID:        u.ID.String(),
			Username:  u.Username,
			Email:     u.Email.String,
			Role:      u.Role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		})
	}
	return views, int(total), nil
}

func (g *QueryGateway) ListProjects(ctx context.Context, filter ports.ProjectFilter) ([]ports.ProjectView, int, error) {
	offset, err := pageOffset(filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	var owner pgtype.UUID
	if filter.OwnerID != "" {
		id, err := uuid.Parse(filter.OwnerID)
		if err != nil {
			return nil, 0, domerrors.NewValidationError("owner_id", "must be a UUID")
		}
		owner = pgtype.UUID{Bytes: id, Valid: true}
	}
	total, err := g.q.CountProjects(ctx, owner)
	if err != nil {
		return nil, 0, translate("count projects", err)
	}
	rows, err := g.q.ListProjects(ctx, db.ListProjectsParams{OwnerID: owner, Limit: pageLimit(filter.Limit), Offset: offset})
	if err != nil {
		return nil, 0, translate("list projects", err)
	}
	views := make([]ports.ProjectView, 0, len(rows))
	for _, p := range rows {
		views = append(views, ports.ProjectView{
			ID:        p.ID.String(),
			Name:      p.Name,
			OwnerID:   p.OwnerID.String(),
			TaskCount: int(p.TaskCount),
			CreatedAt: p.CreatedAt,
		})
	}
	return views, int(total), nil
}

func (g *QueryGateway) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]ports.TaskView, int, error) {
	offset, err := pageOffset(filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	projectID, err := uuid.Parse(filter.ProjectID)
	if err != nil {
		return nil, 0, domerrors.NewValidationError("project_id", "must be a UUID")
	}
	status, priority := optionalText(filter.Status), optionalText(filter.Priority)
	total, err := g.q.CountTasks(ctx, projectID, status, priority)
	if err != nil {
		return nil, 0, translate("count tasks", err)
	}
	rows, err := g.q.ListTasks(ctx, db.ListTasksParams{
		ProjectID: projectID,
		Status:    status,
		Priority:  priority,
		Limit:     pageLimit(filter.Limit),
		Offset:    offset,
	})
	if err != nil {
		return nil, 0, translate("list tasks", err)
	}
	views := make([]ports.TaskView, 0, len(rows))
	for _, t := range rows {
		views = append(views, ports.TaskView{
			ID:        t.ID.String(),
			ProjectID: t.ProjectID.String(),
			Title:     t.Title,
			Priority:  t.Priority,
			Status:    t.Status,
			CreatorID: t.CreatorID.String(),
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}
	return views, int(total), nil
}

// pageOffset refuses offsets that OFFSET's int4 parameter cannot hold instead of letting them wrap.
func pageOffset(offset int) (int32, error) {
	if offset < 0 || offset > math.MaxInt32 {
		return 0, domerrors.NewValidationError("page", "offset out of range")
	}
	return int32(offset), nil
}

// pageLimit maps a non-positive limit to "no limit", matching the in-memory gateway.
func pageLimit(limit int) int32 {
	if limit <= 0 || limit > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(limit)
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

var (
	_ ports.UserQueryGateway    = (*QueryGateway)(nil)
	_ ports.ProjectQueryGateway = (*QueryGateway)(nil)
	_ ports.TaskQueryGateway    = (*QueryGateway)(nil)
)
