package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        pgtype.Text
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Project struct {
	ID        uuid.UUID
	Name      string
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Task struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Title     string
	Priority  string
	Status    string
	CreatorID uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListProjectsRow struct {
	Project
	TaskCount int64
}
