package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type CreateUserInput struct {
	Username string
	Email    string // optional
	Password string
	Role     string // optional, defaults to USER
}

type CreateUserResult struct {
	User *domain.User
}

// CreateUser registers an account. Anyone may create a USER; ADMIN needs an admin caller and
// SUPER_ADMIN needs a super admin.
type CreateUser struct {
	uow   ports.UnitOfWorkFactory
	users *domain.UserService
	audit auditor
}

func NewCreateUser(uow ports.UnitOfWorkFactory, users *domain.UserService, audit ports.AuditEnqueuer) *CreateUser {
	return &CreateUser{uow: uow, users: users, audit: auditor{queue: audit}}
}

func (uc *CreateUser) Execute(ctx context.Context, idp ports.IdentityProvider, input CreateUserInput) (*CreateUserResult, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	var actorID string
	if role != domain.RoleUser {
		actor, err := requireAdmin(ctx, idp)
		if err != nil {
			return nil, err
		}
		if role == domain.RoleSuperAdmin && actor.Role() != domain.RoleSuperAdmin {
			return nil, domerrors.ErrForbidden
		}
		actorID = actor.ID().String()
	}
	username, err := domain.NewUsername(input.Username)
	if err != nil {
		return nil, err
	}
	var email domain.Email
	if input.Email != "" {
		if email, err = domain.NewEmail(input.Email); err != nil {
			return nil, err
		}
	}

	uow, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, uow)

	// Fast path only. Two concurrent requests can both pass this; the unique constraint decides at
	// Add or Commit and comes back as ErrUsernameAlreadyExists.
	exists, err := uow.Users().ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domerrors.ErrUsernameAlreadyExists
	}
	user, err := uc.users.CreateUser(ctx, username, email, input.Password, role)
	if err != nil {
		return nil, err
	}
	if err := uow.Users().Add(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	if actorID == "" {
		actorID = user.ID().String()
	}
	uc.audit.emit(ctx, "user.created", actorID, user.ID().String(), "")
	return &CreateUserResult{User: user}, nil
}
