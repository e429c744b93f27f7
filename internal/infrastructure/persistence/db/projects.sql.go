package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createProject = `INSERT INTO projects (id, name, owner_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`

type CreateProjectParams struct {
	ID        uuid.UUID
	Name      string
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) error {
	_, err := q.db.Exec(ctx, createProject, arg.ID, arg.Name, arg.OwnerID, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getProjectByID = `SELECT id, name, owner_id, created_at, updated_at FROM projects WHERE id = $1`

func (q *Queries) GetProjectByID(ctx context.Context, id uuid.UUID) (Project, error) {
	var p Project
	err := q.db.QueryRow(ctx, getProjectByID, id).Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const updateProject = `UPDATE projects SET name = $2, updated_at = $3 WHERE id = $1`

func (q *Queries) UpdateProject(ctx context.Context, id uuid.UUID, name string, updatedAt time.Time) (int64, error) {
	tag, err := q.db.Exec(ctx, updateProject, id, name, updatedAt)
	return tag.RowsAffected(), err
}

const listProjects = `SELECT p.id, p.name, p.owner_id, p.created_at, p.updated_at,
	(SELECT count(*) FROM tasks t WHERE t.project_id = p.id) AS task_count
FROM projects p
WHERE ($1::uuid IS NULL OR p.owner_id = $1)
ORDER BY p.created_at, p.id
LIMIT $2 OFFSET $3`

type ListProjectsParams struct {
	OwnerID pgtype.UUID
	Limit   int32
	Offset  int32
}

func (q *Queries) ListProjects(ctx context.Context, arg ListProjectsParams) ([]ListProjectsRow, error) {
	rows, err := q.db.Query(ctx, listProjects, arg.OwnerID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListProjectsRow
	for rows.Next() {
		var r ListProjectsRow
		if err := rows.Scan(&r.ID, &r.Name, &r.OwnerID, &r.CreatedAt, &r.UpdatedAt, &r.TaskCount); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const countProjects = `SELECT count(*) FROM projects WHERE ($1::uuid IS NULL OR owner_id = $1)`

func (q *Queries) CountProjects(ctx context.Context, ownerID pgtype.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countProjects, ownerID).Scan(&n)
	return n, err
}
