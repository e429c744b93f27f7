package handlers

import (
	"time"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func userFromEntity(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID().String(),
		Username:  u.Username().String(),
		Email:     u.Email().String(),
		Role:      string(u.Role()),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}

func userFromView(v ports.UserView) userResponse {
	return userResponse(v)
}

type projectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	TaskCount int       `json:"task_count"`
	CreatedAt time.Time `json:"created_at"`
}

func projectFromEntity(p *domain.Project) projectResponse {
	return projectResponse{
		ID:        p.ID().String(),
		Name:      p.Name().String(),
		OwnerID:   p.OwnerID().String(),
		CreatedAt: p.CreatedAt(),
	}
}

func projectFromView(v ports.ProjectView) projectResponse {
	return projectResponse(v)
}

type taskResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	CreatorID string    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func taskFromEntity(t *domain.Task) taskResponse {
	return taskResponse{
		ID:        t.ID().String(),
		ProjectID: t.ProjectID().String(),
		Title:     t.Title().String(),
		Priority:  string(t.Priority()),
		Status:    string(t.Status()),
		CreatorID: t.CreatorID().String(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func taskFromView(v ports.TaskView) taskResponse {
	return taskResponse(v)
}
