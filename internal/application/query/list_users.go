package query

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type ListUsersInput struct {
	Page
	IsActive *bool
}

// ListUsers pages through accounts. Admins only.
type ListUsers struct {
	gateway ports.UserQueryGateway
}

func NewListUsers(gateway ports.UserQueryGateway) *ListUsers {
	return &ListUsers{gateway: gateway}
}

func (q *ListUsers) Execute(ctx context.Context, idp ports.IdentityProvider, input ListUsersInput) (*Result[ports.UserView], error) {
	if idp == nil {
		return nil, domerrors.ErrUnauthenticated
	}
	caller, err := idp.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, domerrors.ErrForbidden
	}
	offset, limit, err := input.bounds()
	if err != nil {
		return nil, err
	}
	items, total, err := q.gateway.ListUsers(ctx, ports.UserFilter{Offset: offset, Limit: limit, IsActive: input.IsActive})
	if err != nil {
		return nil, err
	}
	return newResult(items, total, offset, limit), nil
}
