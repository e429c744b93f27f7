package query

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// GetCurrentUser projects the resolved caller. It reads the provider's per-request cache, not a gateway.
type GetCurrentUser struct{}

func NewGetCurrentUser() *GetCurrentUser { return &GetCurrentUser{} }

func (q *GetCurrentUser) Execute(ctx context.Context, idp ports.IdentityProvider) (*ports.UserView, error) {
	if idp == nil {
		return nil, domerrors.ErrUnauthenticated
	}
	user, err := idp.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.UserView{
		ID:        user.ID().String(),
		Username:  user.Username().String(),
		Email:     user.Email().String(),
		Role:      string(user.Role()),
		IsActive:  user.IsActive(),
		CreatedAt: user.CreatedAt(),
	}, nil
}
