package domain

import (
	"time"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// Project groups tasks and is owned by one user (referenced by id only).
type Project struct {
	id        ProjectID
	name      ProjectName
	ownerID   UserID
	createdAt time.Time
	updatedAt time.Time
}

// ProjectState is the flat persisted shape of a Project.
type ProjectState struct {
	ID        ProjectID
	Name      ProjectName
	OwnerID   UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProject creates a project owned by owner. Inactive users cannot own new projects.
func NewProject(name ProjectName, owner *User) (*Project, error) {
	if owner == nil {
		return nil, domerrors.NewValidationError("owner_id", "must be set")
	}
	if !owner.IsActive() {
		return nil, domerrors.ErrUserNotActive
	}
	if name == (ProjectName{}) {
		return nil, domerrors.NewValidationError("name", "must be set")
	}
	now := time.Now().UTC()
	return &Project{
		id:        NewProjectID(),
		name:      name,
		ownerID:   owner.ID(),
		createdAt: now,
		updatedAt: now,
	}, nil
}

func RestoreProject(s ProjectState) (*Project, error) {
	if s.ID.IsZero() {
		return nil, domerrors.NewValidationError("project_id", "must be set")
	}
	if s.OwnerID.IsZero() {
		return nil, domerrors.NewValidationError("owner_id", "must be set")
	}
	if s.Name == (ProjectName{}) {
		return nil, domerrors.NewValidationError("name", "must be set")
	}
	return &Project{
		id:        s.ID,
		name:      s.Name,
		ownerID:   s.OwnerID,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}, nil
}

func (p *Project) State() ProjectState {
	return ProjectState{
		ID:        p.id,
		Name:      p.name,
		OwnerID:   p.ownerID,
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
	}
}

func (p *Project) ID() ProjectID        { return p.id }
func (p *Project) Name() ProjectName    { return p.name }
func (p *Project) OwnerID() UserID      { return p.ownerID }
func (p *Project) CreatedAt() time.Time { return p.createdAt }
func (p *Project) UpdatedAt() time.Time { return p.updatedAt }

func (p *Project) Equals(other *Project) bool {
	if p == nil || other == nil {
		return false
	}
	return p.id == other.id
}

// CanBeReadBy reports whether user may see the project and its tasks.
func (p *Project) CanBeReadBy(user *User) bool {
	return p.CanBeWrittenBy(user)
}

// CanBeWrittenBy reports whether user may modify the project or its tasks:
// the active owner, or any active admin.
func (p *Project) CanBeWrittenBy(user *User) bool {
	if user == nil || !user.IsActive() {
		return false
	}
	return user.ID() == p.ownerID || user.IsAdmin()
}

// Rename replaces the project name.
func (p *Project) Rename(name ProjectName) error {
	if name == (ProjectName{}) {
		return domerrors.NewValidationError("name", "must be set")
	}
	p.name = name
	p.updatedAt = time.Now().UTC()
	return nil
}
