package command

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

type CreateProjectInput struct {
	Name string
}

type CreateProjectResult struct {
	Project *domain.Project
}

// CreateProject creates a project owned by the caller.
type CreateProject struct {
	uow   ports.UnitOfWorkFactory
	audit auditor
}

func NewCreateProject(uow ports.UnitOfWorkFactory, audit ports.AuditEnqueuer) *CreateProject {
	return &CreateProject{uow: uow, audit: auditor{queue: audit}}
}

func (uc *CreateProject) Execute(ctx context.Context, idp ports.IdentityProvider, input CreateProjectInput) (*CreateProjectResult, error) {
	owner, err := caller(ctx, idp)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewProjectName(input.Name)
	if err != nil {
		return nil, err
	}
	project, err := domain.NewProject(name, owner)
	if err != nil {
		return nil, err
	}

	uow, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, uow)

	if err := uow.Projects().Add(ctx, project); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	uc.audit.emit(ctx, "project.created", owner.ID().String(), "", project.ID().String())
	return &CreateProjectResult{Project: project}, nil
}
