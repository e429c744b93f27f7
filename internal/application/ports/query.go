package ports

import (
	"context"
	"time"
)

// Query gateways serve the read side. They return flat projections and never build entities.
// Every list call returns the total number of matching rows regardless of Limit.

// UserView is the list projection of a user (no password hash).
type UserView struct {
	ID        string
	Username  string
	Email     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}

type UserFilter struct {
	Offset   int
	Limit    int
	IsActive *bool
}

type UserQueryGateway interface {
	ListUsers(ctx context.Context, filter UserFilter) ([]UserView, int, error)
}

type ProjectView struct {
	ID        string
	Name      string
	OwnerID   string
	TaskCount int
	CreatedAt time.Time
}

type ProjectFilter struct {
	// OwnerID limits results to one owner; empty lists every project.
	OwnerID string
	Offset  int
	Limit   int
}

type ProjectQueryGateway interface {
	ListProjects(ctx context.Context, filter ProjectFilter) ([]ProjectView, int, error)
}

type TaskView struct {
	ID        string
	ProjectID string
	Title     string
	Priority  string
	Status    string
	CreatorID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TaskFilter struct {
	ProjectID string
	Status    string
	Priority  string
	Offset    int
	Limit     int
}

type TaskQueryGateway interface {
	ListTasks(ctx context.Context, filter TaskFilter) ([]TaskView, int, error)
}
