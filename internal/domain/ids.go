package domain

import (
	"github.com/google/uuid"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID returns a fresh random UserID.
func NewUserID() UserID { return UserID{UUID: uuid.New()} }

// UserIDFrom wraps an existing uuid (e.g. a persisted row id).
func UserIDFrom(id uuid.UUID) UserID { return UserID{UUID: id} }

// ParseUserID validates the canonical string form.
func ParseUserID(s string) (UserID, error) {
	id, err := parseID("user_id", s)
	return UserID{UUID: id}, err
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// IsZero reports whether the id was never assigned.
func (u UserID) IsZero() bool { return u.UUID == uuid.Nil }

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

func NewProjectID() ProjectID { return ProjectID{UUID: uuid.New()} }

func ProjectIDFrom(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

func ParseProjectID(s string) (ProjectID, error) {
	id, err := parseID("project_id", s)
	return ProjectID{UUID: id}, err
}

func (p ProjectID) String() string { return p.UUID.String() }

func (p ProjectID) IsZero() bool { return p.UUID == uuid.Nil }

// TaskID is a value object for task identity.
type TaskID struct{ uuid.UUID }

func NewTaskID() TaskID { return TaskID{UUID: uuid.New()} }

func TaskIDFrom(id uuid.UUID) TaskID { return TaskID{UUID: id} }

func ParseTaskID(s string) (TaskID, error) {
	id, err := parseID("task_id", s)
	return TaskID{UUID: id}, err
}

func (t TaskID) String() string { return t.UUID.String() }

func (t TaskID) IsZero() bool { return t.UUID == uuid.Nil }

func parseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domerrors.NewValidationError(field, "must be a UUID")
	}
	if id == uuid.Nil {
		return uuid.Nil, domerrors.NewValidationError(field, "must not be the nil UUID")
	}
	return id, nil
}
