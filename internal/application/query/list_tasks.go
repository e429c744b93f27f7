package query

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type ListTasksInput struct {
	Page
	ProjectID string
	Status    string // optional
	Priority  string // optional
}

// ListTasks pages through one project's tasks. The project is loaded only to authorize the read.
type ListTasks struct {
	projects ports.ProjectReader
	gateway  ports.TaskQueryGateway
}

func NewListTasks(projects ports.ProjectReader, gateway ports.TaskQueryGateway) *ListTasks {
	return &ListTasks{projects: projects, gateway: gateway}
}

func (q *ListTasks) Execute(ctx context.Context, idp ports.IdentityProvider, input ListTasksInput) (*Result[ports.TaskView], error) {
	if idp == nil {
		return nil, domerrors.ErrUnauthenticated
	}
	caller, err := idp.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	projectID, err := domain.ParseProjectID(input.ProjectID)
	if err != nil {
		return nil, err
	}
	filter := ports.TaskFilter{ProjectID: projectID.String()}
	if input.Status != "" {
		status, err := domain.ParseTaskStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(status)
	}
	if input.Priority != "" {
		priority, err := domain.ParsePriority(input.Priority)
		if err != nil {
			return nil, err
		}
		filter.Priority = string(priority)
	}
	if filter.Offset, filter.Limit, err = input.bounds(); err != nil {
		return nil, err
	}

	project, err := q.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if !project.CanBeReadBy(caller) {
		return nil, domerrors.ErrForbidden
	}
	items, total, err := q.gateway.ListTasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newResult(items, total, filter.Offset, filter.Limit), nil
}
