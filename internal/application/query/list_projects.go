package query

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type ListProjectsInput struct {
	Page
	// All lists every project; honored for admins only.
	All bool
}

// ListProjects pages through the caller's projects, or all projects for an admin asking for them.
type ListProjects struct {
	gateway ports.ProjectQueryGateway
}

func NewListProjects(gateway ports.ProjectQueryGateway) *ListProjects {
	return &ListProjects{gateway: gateway}
}

func (q *ListProjects) Execute(ctx context.Context, idp ports.IdentityProvider, input ListProjectsInput) (*Result[ports.ProjectView], error) {
	if idp == nil {
		return nil, domerrors.ErrUnauthenticated
	}
	caller, err := idp.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	offset, limit, err := input.bounds()
	if err != nil {
		return nil, err
	}
	filter := ports.ProjectFilter{OwnerID: caller.ID().String(), Offset: offset, Limit: limit}
	if input.All && caller.IsAdmin() {
		filter.OwnerID = ""
	}
	items, total, err := q.gateway.ListProjects(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newResult(items, total, offset, limit), nil
}
