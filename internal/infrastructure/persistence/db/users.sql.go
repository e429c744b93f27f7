package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, username, email, password_hash, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const createUser = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type CreateUserParams struct {
	ID           uuid.UUID
	Username     string
	Email        pgtype.Text
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.Exec(ctx, createUser,
		arg.ID, arg.Username, arg.Email, arg.PasswordHash, arg.Role, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByID, id))
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByUsername, username))
}

const userExistsByUsername = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

func (q *Queries) UserExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, userExistsByUsername, username).Scan(&exists)
	return exists, err
}

const updateUser = `UPDATE users SET email = $2, password_hash = $3, role = $4, is_active = $5, updated_at = $6 WHERE id = $1`

type UpdateUserParams struct {
	ID           uuid.UUID
	Email        pgtype.Text
	PasswordHash string
	Role         string
	IsActive     bool
	UpdatedAt    time.Time
}

// UpdateUser returns the number of rows affected.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateUser, arg.ID, arg.Email, arg.PasswordHash, arg.Role, arg.IsActive, arg.UpdatedAt)
	return tag.RowsAffected(), err
}

const listUsers = `SELECT ` + userColumns + ` FROM users
WHERE ($1::boolean IS NULL OR is_active = $1)
ORDER BY created_at, id
LIMIT $2 OFFSET $3`

type ListUsersParams struct {
	IsActive pgtype.Bool
	Limit    int32
	Offset   int32
}

func (q *Queries) ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsers, arg.IsActive, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

const countUsers = `SELECT count(*) FROM users WHERE ($1::boolean IS NULL OR is_active = $1)`

func (q *Queries) CountUsers(ctx context.Context, isActive pgtype.Bool) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countUsers, isActive).Scan(&n)
	return n, err
}
