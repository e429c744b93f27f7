package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const taskColumns = `id, project_id, title, priority, status, creator_id, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Priority, &t.Status, &t.CreatorID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const createTask = `INSERT INTO tasks (` + taskColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type CreateTaskParams struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Title     string
	Priority  string
	Status    string
	CreatorID uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateTask(ctx context.Context, arg CreateTaskParams) error {
	_, err := q.db.Exec(ctx, createTask,
		arg.ID, arg.ProjectID, arg.Title, arg.Priority, arg.Status, arg.CreatorID, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getTaskByID = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

func (q *Queries) GetTaskByID(ctx context.Context, id uuid.UUID) (Task, error) {
	return scanTask(q.db.QueryRow(ctx, getTaskByID, id))
}

const updateTask = `UPDATE tasks SET title = $2, priority = $3, status = $4, updated_at = $5 WHERE id = $1`

type UpdateTaskParams struct {
	ID        uuid.UUID
	Title     string
	Priority  string
	Status    string
	UpdatedAt time.Time
}

func (q *Queries) UpdateTask(ctx context.Context, arg UpdateTaskParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateTask, arg.ID, arg.Title, arg.Priority, arg.Status, arg.UpdatedAt)
	return tag.RowsAffected(), err
}

const deleteTask = `DELETE FROM tasks WHERE id = $1`

func (q *Queries) DeleteTask(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteTask, id)
	return tag.RowsAffected(), err
}

const taskFilter = `WHERE project_id = $1
	AND ($2::text IS NULL OR status = $2)
	AND ($3::text IS NULL OR priority = $3)`

const listTasks = `SELECT ` + taskColumns + ` FROM tasks ` + taskFilter + `
ORDER BY created_at, id
LIMIT $4 OFFSET $5`

type ListTasksParams struct {
	ProjectID uuid.UUID
	Status    pgtype.Text
	Priority  pgtype.Text
	Limit     int32
	Offset    int32
}

func (q *Queries) ListTasks(ctx context.Context, arg ListTasksParams) ([]Task, error) {
	rows, err := q.db.Query(ctx, listTasks, arg.ProjectID, arg.Status, arg.Priority, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const countTasks = `SELECT count(*) FROM tasks ` + taskFilter

func (q *Queries) CountTasks(ctx context.Context, projectID uuid.UUID, status, priority pgtype.Text) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countTasks, projectID, status, priority).Scan(&n)
	return n, err
}
