package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type SetUserActiveInput struct {
	UserID string
	Active bool
}

type SetUserActiveResult struct {
	User *domain.User
}

// SetUserActive activates or deactivates an account. Admins only; nobody can toggle themselves and
// only a super admin can touch another super admin.
type SetUserActive struct {
	uow   ports.UnitOfWorkFactory
	audit auditor
}

func NewSetUserActive(uow ports.UnitOfWorkFactory, audit ports.AuditEnqueuer) *SetUserActive {
	return &SetUserActive{uow: uow, audit: auditor{queue: audit}}
}

func (uc *SetUserActive) Execute(ctx context.Context, idp ports.IdentityProvider, input SetUserActiveInput) (*SetUserActiveResult, error) {
	actor, err := requireAdmin(ctx, idp)
	if err != nil {
		return nil, err
	}
	id, err := domain.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	if id == actor.ID() {
		return nil, domerrors.ErrForbidden
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
	if user.Role() == domain.RoleSuperAdmin && actor.Role() != domain.RoleSuperAdmin {
		return nil, domerrors.ErrForbidden
	}
	event := "user.deactivated"
	if input.Active {
		user.Activate()
		event = "user.activated"
	} else {
		user.Deactivate()
	}
	if err := uow.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	uc.audit.emit(ctx, event, actor.ID().String(), user.ID().String(), "")
	return &SetUserActiveResult{User: user}, nil
}
