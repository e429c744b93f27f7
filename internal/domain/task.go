package domain

import (
	"time"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// Task belongs to exactly one project and always has a defined priority and status.
type Task struct {
	id        TaskID
	projectID ProjectID
	title     TaskTitle
	priority  Priority
	status    TaskStatus
	creatorID UserID
	createdAt time.Time
	updatedAt time.Time
}

// TaskState is the flat persisted shape of a Task.
type TaskState struct {
	ID        TaskID
	ProjectID ProjectID
	Title     TaskTitle
	Priority  Priority
	Status    TaskStatus
	CreatorID UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask creates a TODO task in project. Taking the loaded project rather than its id means a
// task can only be built against a project that exists. An empty priority becomes DefaultPriority.
func NewTask(project *Project, title TaskTitle, priority Priority, creator UserID) (*Task, error) {
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if title == (TaskTitle{}) {
		return nil, domerrors.NewValidationError("title", "must be set")
	}
	if creator.IsZero() {
		return nil, domerrors.NewValidationError("creator_id", "must be set")
	}
	p, err := ParsePriority(string(priority))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Task{
		id:        NewTaskID(),
		projectID: project.ID(),
		title:     title,
		priority:  p,
		status:    StatusTodo,
		creatorID: creator,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func RestoreTask(s TaskState) (*Task, error) {
	if s.ID.IsZero() {
		return nil, domerrors.NewValidationError("task_id", "must be set")
	}
	if s.ProjectID.IsZero() {
		return nil, domerrors.NewValidationError("project_id", "must be set")
	}
	if s.Title == (TaskTitle{}) {
		return nil, domerrors.NewValidationError("title", "must be set")
	}
	if s.CreatorID.IsZero() {
		return nil, domerrors.NewValidationError("creator_id", "must be set")
	}
	if s.Priority == "" {
		return nil, domerrors.NewValidationError("priority", "must be set")
	}
	if _, err := ParsePriority(string(s.Priority)); err != nil {
		return nil, err
	}
	if _, err := ParseTaskStatus(string(s.Status)); err != nil {
		return nil, err
	}
	return &Task{
		id:        s.ID,
		projectID: s.ProjectID,
		title:     s.Title,
		priority:  s.Priority,
		status:    s.Status,
		creatorID: s.CreatorID,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}, nil
}

func (t *Task) State() TaskState {
	return TaskState{
		ID:        t.id,
		ProjectID: t.projectID,
		Title:     t.title,
		Priority:  t.priority,
		Status:    t.status,
		CreatorID: t.creatorID,
		CreatedAt: t.createdAt,
		UpdatedAt: t.updatedAt,
	}
}

func (t *Task) ID() TaskID           { return t.id }
func (t *Task) ProjectID() ProjectID { return t.projectID }
func (t *Task) Title() TaskTitle     { return t.title }
func (t *Task) Priority() Priority   { return t.priority }
func (t *Task) Status() TaskStatus   { return t.status }
func (t *Task) CreatorID() UserID    { return t.creatorID }
func (t *Task) CreatedAt() time.Time { return t.createdAt }
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }

func (t *Task) Equals(other *Task) bool {
	if t == nil || other == nil {
		return false
	}
	return t.id == other.id
}

// ChangeStatus moves the task along the status table. Same-state moves are rejected.
func (t *Task) ChangeStatus(target TaskStatus) error {
	if _, err := ParseTaskStatus(string(target)); err != nil {
		return err
	}
	if !CanTransitionTo(t.status, target) {
		return domerrors.ErrInvalidTransition
	}
	t.status = target
	t.touch()
	return nil
}

// ChangePriority sets a new priority; empty resets to DefaultPriority.
func (t *Task) ChangePriority(p Priority) error {
	parsed, err := ParsePriority(string(p))
	if err != nil {
		return err
	}
	t.priority = parsed
	t.touch()
	return nil
}

func (t *Task) Retitle(title TaskTitle) error {
	if title == (TaskTitle{}) {
		return domerrors.NewValidationError("title", "must be set")
	}
	t.title = title
	t.touch()
	return nil
}

func (t *Task) touch() {
	t.updatedAt = time.Now().UTC()
}
