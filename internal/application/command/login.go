package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

const DefaultAccessTokenExpiry = 900 // 15 min

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
	User        *domain.User
}

// Login verifies credentials and issues the bearer token the identity provider later resolves.
// It stages no writes, so it reads through UserReader instead of a unit of work.
type Login struct {
	users     ports.UserReader
	service   *domain.UserService
	issuer    ports.TokenIssuer
	lockout   ports.LoginLockoutStore
	accessExp int64
}

func NewLogin(users ports.UserReader, service *domain.UserService, issuer ports.TokenIssuer, lockout ports.LoginLockoutStore, accessExp int64) *Login {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	return &Login{users: users, service: service, issuer: issuer, lockout: lockout, accessExp: accessExp}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username, err := domain.NewUsername(input.Username)
	if err != nil {
		return nil, domerrors.ErrInvalidCredentials
	}
	if uc.lockout != nil {
		if locked, _ := uc.lockout.IsLocked(ctx, username.String()); locked {
			return nil, domerrors.ErrAccountLocked
		}
	}
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	ok := false
	if user != nil {
		if ok, err = uc.service.VerifyPassword(ctx, user, input.Password); err != nil {
			return nil, err
		}
	}
	if !ok {
		if uc.lockout != nil {
			uc.lockout.RecordFailure(ctx, username.String())
		}
		return nil, domerrors.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domerrors.ErrUserNotActive
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, username.String())
	}
	token, err := uc.issuer.IssueAccessToken(user.ID().String(), string(user.Role()), uc.accessExp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresIn: uc.accessExp, User: user}, nil
}
