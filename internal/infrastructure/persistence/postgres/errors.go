package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// Constraint names from schema.sql.
const (
	constraintUsername     = "users_username_key"
	constraintEmail        = "users_email_key"
	constraintProjectOwner = "projects_owner_id_fkey"
	constraintTaskProject  = "tasks_project_id_fkey"
	constraintTaskCreator  = "tasks_creator_id_fkey"
)

// translate maps recognized constraint violations to domain errors and hides everything else
// behind an InfrastructureError.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) {
		switch pgerr.Code {
		case pgerrcode.UniqueViolation:
			switch pgerr.ConstraintName {
			case constraintUsername:
				return domerrors.ErrUsernameAlreadyExists
			case constraintEmail:
				return domerrors.ErrEmailAlreadyExists
			}
		case pgerrcode.ForeignKeyViolation:
			switch pgerr.ConstraintName {
			case constraintTaskProject:
				return domerrors.ErrProjectNotFound
			case constraintProjectOwner, constraintTaskCreator:
				return domerrors.ErrUserNotFound
			}
		}
	}
	return domerrors.Infrastructure(op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
