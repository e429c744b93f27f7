package domain

import (
	"context"
	"time"
	"unicode/utf8"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// UserService holds user logic that needs the PasswordHasher port. It keeps no state of its own.
type UserService struct {
	hasher PasswordHasher
}

func NewUserService(hasher PasswordHasher) *UserService {
	return &UserService{hasher: hasher}
}

// CreateUser hashes rawPassword and returns a new active user. An empty role means RoleUser.
func (s *UserService) CreateUser(ctx context.Context, username Username, email Email, rawPassword string, role Role) (*User, error) {
	if username == (Username{}) {
		return nil, domerrors.NewValidationError("username", "must be set")
	}
	r, err := ParseRole(string(role))
	if err != nil {
		return nil, err
	}
	hash, err := s.hash(ctx, rawPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		id:           NewUserID(),
		username:     username,
		email:        email,
		passwordHash: hash,
		role:         r,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// VerifyPassword checks rawPassword against the user's stored hash.
func (s *UserService) VerifyPassword(ctx context.Context, user *User, rawPassword string) (bool, error) {
	if user == nil {
		return false, nil
	}
	return s.hasher.Verify(ctx, rawPassword, user.passwordHash)
}

// ChangePassword re-hashes newRawPassword and replaces the user's hash in place.
func (s *UserService) ChangePassword(ctx context.Context, user *User, newRawPassword string) error {
	hash, err := s.hash(ctx, newRawPassword)
	if err != nil {
		return err
	}
	user.replacePasswordHash(hash)
	return nil
}

func (s *UserService) hash(ctx context.Context, rawPassword string) (PasswordHash, error) {
	if n := utf8.RuneCountInString(rawPassword); n < MinPasswordLength || n > MaxPasswordLength {
		return PasswordHash{}, domerrors.NewValidationError("password", "must be 8-128 characters")
	}
	return s.hasher.Hash(ctx, rawPassword)
}
