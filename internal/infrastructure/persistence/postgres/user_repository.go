package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/db"
)

// UserRepository runs on whatever Queries it is given: a transaction inside a unit of work, or the
// pool when used as a plain ports.UserReader.
type UserRepository struct {
	q *db.Queries
}

func NewUserRepository(q *db.Queries) *UserRepository {
	return &UserRepository{q: q}
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := r.q.GetUserByID(ctx, id.UUID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translate("select user", err)
	}
	return dbUserToDomain(u)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	u, err := r.q.GetUserByUsername(ctx, username.String())
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translate("select user", err)
	}
	return dbUserToDomain(u)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username domain.Username) (bool, error) {
	exists, err := r.q.UserExistsByUsername(ctx, username.String())
	return exists, translate("select user", err)
}

// Add inserts immediately so the unique constraint reports a duplicate here, inside the transaction.
func (r *UserRepository) Add(ctx context.Context, user *domain.User) error {
	s := user.State()
	return translate("insert user", r.q.CreateUser(ctx, db.CreateUserParams{
		ID:           s.ID.UUID,
		Username:     s.Username.String(),
		Email:        emailToDB(s.Email),
		PasswordHash: string(s.PasswordHash.Bytes()),
		Role:         string(s.Role),
		IsActive:     s.Active,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}))
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	s := user.State()
	n, err := r.q.UpdateUser(ctx, db.UpdateUserParams{
		ID:           s.ID.UUID,
		Email:        emailToDB(s.Email),
		PasswordHash: string(s.PasswordHash.Bytes()),
		Role:         string(s.Role),
		IsActive:     s.Active,
		UpdatedAt:    s.UpdatedAt,
	})
	if err != nil {
		return translate("update user", err)
	}
	if n == 0 {
		return domerrors.ErrUserNotFound
	}
	return nil
}

func emailToDB(e domain.Email) pgtype.Text {
	if e.IsZero() {
		return pgtype.Text{}
	}
	return pgtype.Text{String: e.String(), Valid: true}
}

func dbUserToDomain(u db.User) (*domain.User, error) {
	username, err := domain.NewUsername(u.Username)
	if err != nil {
		return nil, domerrors.Infrastructure("decode user", err)
	}
	var email domain.Email
	if u.Email.Valid {
		if email, err = domain.NewEmail(u.Email.String); err != nil {
			return nil, domerrors.Infrastructure("decode user", err)
		}
	}
	hash, err := domain.NewPasswordHash([]byte(u.PasswordHash))
	if err != nil {
		return nil, domerrors.Infrastructure("decode user", err)
	}
	user, err := domain.RestoreUser(domain.UserState{
		ID:           domain.UserIDFrom(u.ID),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.Role(u.Role),
		Active:       u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	return user, domerrors.Infrastructure("decode user", err)
}

var _ ports.UserRepository = (*UserRepository)(nil)
