package domain

import (
	"time"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// User is an account. State changes only through its named methods; new users come from UserService.
type User struct {
	id           UserID
	username     Username
	email        Email
	passwordHash PasswordHash
	role         Role
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// UserState is the flat persisted shape of a User. Adapters use it to store and rehydrate users.
type UserState struct {
	ID           UserID
	Username     Username
	Email        Email
	PasswordHash PasswordHash
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreUser rehydrates a persisted user.
func RestoreUser(s UserState) (*User, error) {
	if s.ID.IsZero() {
		return nil, domerrors.NewValidationError("user_id", "must be set")
	}
	if s.Username == (Username{}) {
		return nil, domerrors.NewValidationError("username", "must be set")
	}
	if s.PasswordHash == (PasswordHash{}) {
		return nil, domerrors.NewValidationError("password_hash", "must be set")
	}
	if _, err := ParseRole(string(s.Role)); err != nil || s.Role == "" {
		return nil, domerrors.NewValidationError("role", "must be one of USER, ADMIN, SUPER_ADMIN")
	}
	return &User{
		id:           s.ID,
		username:     s.Username,
		email:        s.Email,
		passwordHash: s.PasswordHash,
		role:         s.Role,
		active:       s.Active,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}, nil
}

// State flattens the user for persistence.
func (u *User) State() UserState {
	return UserState{
		ID:           u.id,
		Username:     u.username,
		Email:        u.email,
		PasswordHash: u.passwordHash,
		Role:         u.role,
		Active:       u.active,
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
	}
}

func (u *User) ID() UserID                 { return u.id }
func (u *User) Username() Username         { return u.username }
func (u *User) Email() Email               { return u.email }
func (u *User) PasswordHash() PasswordHash { return u.passwordHash }
func (u *User) Role() Role                 { return u.role }
func (u *User) IsActive() bool             { return u.active }
func (u *User) CreatedAt() time.Time       { return u.createdAt }
func (u *User) UpdatedAt() time.Time       { return u.updatedAt }

// Equals compares identity only.
func (u *User) Equals(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	return u.id == other.id
}

// IsAdmin reports whether the user holds ADMIN or SUPER_ADMIN.
func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin || u.role == RoleSuperAdmin
}

// Activate re-enables a deactivated account. Activating an active user is a no-op.
func (u *User) Activate() {
	if u.active {
		return
	}
	u.active = true
	u.touch()
}

// Deactivate disables the account. Users are never physically deleted.
func (u *User) Deactivate() {
	if !u.active {
		return
	}
	u.active = false
	u.touch()
}

// PromoteToAdmin moves a USER to ADMIN.
func (u *User) PromoteToAdmin() error {
	return u.changeRole(RoleAdmin)
}

// DemoteToUser moves an ADMIN back to USER.
func (u *User) DemoteToUser() error {
	return u.changeRole(RoleUser)
}

func (u *User) changeRole(to Role) error {
	if !u.active {
		return domerrors.ErrUserNotActive
	}
	if !CanTransitionRole(u.role, to) {
		return domerrors.ErrInvalidTransition
	}
	u.role = to
	u.touch()
	return nil
}

func (u *User) replacePasswordHash(h PasswordHash) {
	u.passwordHash = h
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
}
