package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

type RenameProjectInput struct {
	ProjectID string
	Name      string
}

type RenameProjectResult struct {
	Project *domain.Project
}

// RenameProject changes a project's name. Owner or admin only.
type RenameProject struct {
	uow   ports.UnitOfWorkFactory
	audit auditor
}

func NewRenameProject(uow ports.UnitOfWorkFactory, audit ports.AuditEnqueuer) *RenameProject {
	return &RenameProject{uow: uow, audit: auditor{queue: audit}}
}

func (uc *RenameProject) Execute(ctx context.Context, idp ports.IdentityProvider, input RenameProjectInput) (*RenameProjectResult, error) {
	actor, err := caller(ctx, idp)
	if err != nil {
		return nil, err
	}
	id, err := domain.ParseProjectID(input.ProjectID)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewProjectName(input.Name)
	if err != nil {
		return nil, err
	}

	uow, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, uow)

	project, err := uow.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if !project.CanBeWrittenBy(actor) {
		return nil, domerrors.ErrForbidden
	}
	if err := project.Rename(name); err != nil {
		return nil, err
	}
	if err := uow.Projects().Update(ctx, project); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	uc.audit.emit(ctx, "project.renamed", actor.ID().String(), "", project.ID().String())
	return &RenameProjectResult{Project: project}, nil
}
