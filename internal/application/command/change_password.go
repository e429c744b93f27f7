package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// ChangePassword lets the caller replace their own password after proving the current one.
type ChangePassword struct {
	uow     ports.UnitOfWorkFactory
	service *domain.UserService
	audit   auditor
}

func NewChangePassword(uow ports.UnitOfWorkFactory, service *domain.UserService, audit ports.AuditEnqueuer) *ChangePassword {
	return &ChangePassword{uow: uow, service: service, audit: auditor{queue: audit}}
}

func (uc *ChangePassword) Execute(ctx context.Context, idp ports.IdentityProvider, input ChangePasswordInput) error {
	actor, err := caller(ctx, idp)
	if err != nil {
		return err
	}
	uow, err := uc.uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, uow)

	user, err := uow.Users().GetByID(ctx, actor.ID())
	if err != nil {
		return err
	}
	if user == nil {
		return domerrors.ErrUserNotFound
	}
	ok, err := uc.service.VerifyPassword(ctx, user, input.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return domerrors.ErrInvalidCredentials
	}
	if err := uc.service.ChangePassword(ctx, user, input.NewPassword); err != nil {
		return err
	}
	if err := uow.Users().Update(ctx, user); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}
	uc.audit.emit(ctx, "user.password_changed", actor.ID().String(), user.ID().String(), "")
	return nil
}
