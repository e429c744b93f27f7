package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type PromoteUserInput struct {
	UserID string
	// Role is the target role: ADMIN promotes, USER demotes.
	Role string
}

type PromoteUserResult struct {
	User *domain.User
}

// PromoteUser moves a user between USER and ADMIN. Super admins only.
type PromoteUser struct {
	uow   ports.UnitOfWorkFactory
	audit auditor
}

func NewPromoteUser(uow ports.UnitOfWorkFactory, audit ports.AuditEnqueuer) *PromoteUser {
	return &PromoteUser{uow: uow, audit: auditor{queue: audit}}
}

func (uc *PromoteUser) Execute(ctx context.Context, idp ports.IdentityProvider, input PromoteUserInput) (*PromoteUserResult, error) {
	actor, err := caller(ctx, idp)
	if err != nil {
		return nil, err
	}
	if actor.Role() != domain.RoleSuperAdmin {
		return nil, domerrors.ErrForbidden
	}
	id, err := domain.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	uow, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, uow)

	user, err := uow.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	switch role {
	case domain.RoleAdmin:
		err = user.PromoteToAdmin()
	case domain.RoleUser:
		err = user.DemoteToUser()
	default:
		err = domerrors.ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	if err := uow.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	uc.audit.emit(ctx, "user.role_changed", actor.ID().String(), user.ID().String(), "")
	return &PromoteUserResult{User: user}, nil
}
