package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/db"
)

// UnitOfWorkFactory opens one pgx transaction per unit of work.
type UnitOfWorkFactory struct {
	pool *pgxpool.Pool
	q    *db.Queries
	log  zerolog.Logger
}

func NewUnitOfWorkFactory(pool *pgxpool.Pool, log zerolog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{pool: pool, q: db.New(pool), log: log}
}

func (f *UnitOfWorkFactory) Begin(ctx context.Context) (ports.UnitOfWork, error) {
	tx, err := f.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, domerrors.Infrastructure("begin", err)
	}
	q := f.q.WithTx(tx)
	return &unitOfWork{
		tx:       tx,
		log:      f.log,
		users:    NewUserRepository(q),
		projects: NewProjectRepository(q),
		tasks:    NewTaskRepository(q),
	}, nil
}

type unitOfWork struct {
	tx       pgx.Tx
	log      zerolog.Logger
	users    *UserRepository
	projects *ProjectRepository
	tasks    *TaskRepository
	done     bool
}

func (u *unitOfWork) Users() ports.UserRepository       { return u.users }
func (u *unitOfWork) Projects() ports.ProjectRepository { return u.projects }
func (u *unitOfWork) Tasks() ports.TaskRepository       { return u.tasks }

// Commit translates deferred constraint failures the same way Add does.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return domerrors.Infrastructure("commit", pgx.ErrTxClosed)
	}
	err := u.tx.Commit(ctx)
	if err != nil {
		return translate("commit", err)
	}
	u.done = true
	return nil
}

// Rollback is a no-op once Commit has succeeded. A failed Commit leaves done unset so the deferred
// Rollback still releases the connection.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	err := u.tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	u.log.Warn().Err(err).Msg("rollback failed")
	return domerrors.Infrastructure("rollback", err)
}

var (
	_ ports.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
	_ ports.UnitOfWork        = (*unitOfWork)(nil)
)
