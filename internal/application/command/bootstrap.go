package command

import (
	"context"
	"errors"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// EnsureSuperAdmin creates the first SUPER_ADMIN at startup. Nobody can create one over the API
// without already being one, so a fresh deployment needs this seed.
type EnsureSuperAdmin struct {
	uow     ports.UnitOfWorkFactory
	service *domain.UserService
}

func NewEnsureSuperAdmin(uow ports.UnitOfWorkFactory, service *domain.UserService) *EnsureSuperAdmin {
	return &EnsureSuperAdmin{uow: uow, service: service}
}

// Execute reports whether a user was created. An existing account with that username is left untouched.
func (uc *EnsureSuperAdmin) Execute(ctx context.Context, username, password string) (bool, error) {
	name, err := domain.NewUsername(username)
	if err != nil {
		return false, err
	}
	uow, err := uc.uow.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer rollback(ctx, uow)

	exists, err := uow.Users().ExistsByUsername(ctx, name)
	if err != nil || exists {
		return false, err
	}
	user, err := uc.service.CreateUser(ctx, name, domain.Email{}, password, domain.RoleSuperAdmin)
	if err != nil {
		return false, err
	}
	if err := uow.Users().Add(ctx, user); err != nil {
		return false, ignoreTaken(err)
	}
	if err := uow.Commit(ctx); err != nil {
		return false, ignoreTaken(err)
	}
	return true, nil
}

// Another instance seeding concurrently is fine.
func ignoreTaken(err error) error {
	if errors.Is(err, domerrors.ErrUsernameAlreadyExists) {
		return nil
	}
	return err
}
