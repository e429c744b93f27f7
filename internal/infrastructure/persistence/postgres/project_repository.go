package postgres

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/db"
)

type ProjectRepository struct {
	q *db.Queries
}

func NewProjectRepository(q *db.Queries) *ProjectRepository {
	return &ProjectRepository{q: q}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	p, err := r.q.GetProjectByID(ctx, id.UUID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translate("select project", err)
	}
	return dbProjectToDomain(p)
}

func (r *ProjectRepository) Add(ctx context.Context, project *domain.Project) error {
	s := project.State()
	return translate("insert project", r.q.CreateProject(ctx, db.CreateProjectParams{
		ID:        s.ID.UUID,
		Name:      s.Name.String(),
		OwnerID:   s.OwnerID.UUID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}))
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	s := project.State()
	n, err := r.q.UpdateProject(ctx, s.ID.UUID, s.Name.String(), s.UpdatedAt)
	if err != nil {
		return translate("update project", err)
	}
	if n == 0 {
		return domerrors.ErrProjectNotFound
	}
	return nil
}

func dbProjectToDomain(p db.Project) (*domain.Project, error) {
	name, err := domain.NewProjectName(p.Name)
	if err != nil {
		return nil, domerrors.Infrastructure("decode project", err)
	}
	project, err := domain.RestoreProject(domain.ProjectState{
		ID:        domain.ProjectIDFrom(p.ID),
		Name:      name,
		OwnerID:   domain.UserIDFrom(p.OwnerID),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
	return project, domerrors.Infrastructure("decode project", err)
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
