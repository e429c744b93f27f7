package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// fakeHasher is a deterministic, fast PasswordHasher for domain tests.
type fakeHasher struct {
	calls int
}

func (h *fakeHasher) Hash(ctx context.Context, raw string) (PasswordHash, error) {
	h.calls++
	sum := sha256.Sum256([]byte(raw))
	return NewPasswordHash([]byte("sha256$" + hex.EncodeToString(sum[:])))
}

func (h *fakeHasher) Verify(ctx context.Context, raw string, hash PasswordHash) (bool, error) {
	sum := sha256.Sum256([]byte(raw))
	return string(hash.Bytes()) == "sha256$"+hex.EncodeToString(sum[:]), nil
}

func mustUsername(t *testing.T, s string) Username {
	t.Helper()
	u, err := NewUsername(s)
	require.NoError(t, err)
	return u
}

func restoreUser(t *testing.T, id UserID, username string, role Role, active bool) *User {
	t.Helper()
	h, _ := NewPasswordHash([]byte("hash"))
	u, err := RestoreUser(UserState{
		ID:           id,
		Username:     mustUsername(t, username),
		PasswordHash: h,
		Role:         role,
		Active:       active,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
	require.NoError(t, err)
	return u
}

func TestUserEqualityByIdentity(t *testing.T) {
	id := NewUserID()
	a := restoreUser(t, id, "alice99", RoleUser, true)
	b := restoreUser(t, id, "bob1234", RoleAdmin, false)
	c := restoreUser(t, NewUserID(), "alice99", RoleUser, true)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
	var nilUser *User
	assert.False(t, nilUser.Equals(a))
}

func TestRestoreUserRejectsMissingFields(t *testing.T) {
	_, err := RestoreUser(UserState{})
	assert.ErrorIs(t, err, domerrors.ErrValidation)

	h, _ := NewPasswordHash([]byte("hash"))
	_, err = RestoreUser(UserState{ID: NewUserID(), Username: mustUsername(t, "alice99"), PasswordHash: h, Role: "ROOT"})
	assert.ErrorIs(t, err, domerrors.ErrValidation)
}

func TestUserActivation(t *testing.T) {
	u := restoreUser(t, NewUserID(), "alice99", RoleUser, true)
	u.Deactivate()
	assert.False(t, u.IsActive())
	u.Deactivate()
	assert.False(t, u.IsActive())
	u.Activate()
	assert.True(t, u.IsActive())
}

func TestUserPromotion(t *testing.T) {
	u := restoreUser(t, NewUserID(), "alice99", RoleUser, true)
	require.NoError(t, u.PromoteToAdmin())
	assert.Equal(t, RoleAdmin, u.Role())
	assert.True(t, u.IsAdmin())
	assert.ErrorIs(t, u.PromoteToAdmin(), domerrors.ErrInvalidTransition)
	require.NoError(t, u.DemoteToUser())
	assert.Equal(t, RoleUser, u.Role())

	inactive := restoreUser(t, NewUserID(), "carol01", RoleUser, false)
	assert.ErrorIs(t, inactive.PromoteToAdmin(), domerrors.ErrUserNotActive)
	assert.Equal(t, RoleUser, inactive.Role())

	super := restoreUser(t, NewUserID(), "root001", RoleSuperAdmin, true)
	assert.ErrorIs(t, super.DemoteToUser(), domerrors.ErrInvalidTransition)
}

func TestProjectAccess(t *testing.T) {
	owner := restoreUser(t, NewUserID(), "owner01", RoleUser, true)
	other := restoreUser(t, NewUserID(), "other01", RoleUser, true)
	admin := restoreUser(t, NewUserID(), "admin01", RoleAdmin, true)
	name, _ := NewProjectName("Roadmap")

	p, err := NewProject(name, owner)
	require.NoError(t, err)
	assert.Equal(t, owner.ID(), p.OwnerID())
	assert.True(t, p.CanBeWrittenBy(owner))
	assert.True(t, p.CanBeWrittenBy(admin))
	assert.False(t, p.CanBeWrittenBy(other))
	assert.False(t, p.CanBeWrittenBy(nil))

	owner.Deactivate()
	assert.False(t, p.CanBeWrittenBy(owner))
	_, err = NewProject(name, owner)
	assert.ErrorIs(t, err, domerrors.ErrUserNotActive)
}

func newTestProject(t *testing.T) (*Project, *User) {
	t.Helper()
	owner := restoreUser(t, NewUserID(), "owner01", RoleUser, true)
	name, _ := NewProjectName("Roadmap")
	p, err := NewProject(name, owner)
	require.NoError(t, err)
	return p, owner
}

func TestNewTaskDefaultsToMediumPriority(t *testing.T) {
	p, owner := newTestProject(t)
	title, _ := NewTaskTitle("Write release notes")

	task, err := NewTask(p, title, "", owner.ID())
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, task.Priority())
	assert.Equal(t, StatusTodo, task.Status())
	assert.Equal(t, p.ID(), task.ProjectID())

	high, err := NewTask(p, title, PriorityHigh, owner.ID())
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, high.Priority())

	_, err = NewTask(p, title, "whenever", owner.ID())
	assert.ErrorIs(t, err, domerrors.ErrValidation)
	_, err = NewTask(nil, title, "", owner.ID())
	assert.ErrorIs(t, err, domerrors.ErrProjectNotFound)
}

func TestTaskStatusAndPriority(t *testing.T) {
	p, owner := newTestProject(t)
	title, _ := NewTaskTitle("Write release notes")
	task, err := NewTask(p, title, "", owner.ID())
	require.NoError(t, err)

	assert.ErrorIs(t, task.ChangeStatus(StatusDone), domerrors.ErrInvalidTransition)
	require.NoError(t, task.ChangeStatus(StatusInProgress))
	require.NoError(t, task.ChangeStatus(StatusDone))
	assert.Equal(t, StatusDone, task.Status())
	assert.ErrorIs(t, task.ChangeStatus("ARCHIVED"), domerrors.ErrValidation)

	require.NoError(t, task.ChangePriority(PriorityUrgent))
	assert.Equal(t, PriorityUrgent, task.Priority())
	require.NoError(t, task.ChangePriority(""))
	assert.Equal(t, PriorityMedium, task.Priority())

	restored, err := RestoreTask(task.State())
	require.NoError(t, err)
	assert.True(t, restored.Equals(task))
	assert.Equal(t, task.State(), restored.State())
}

func TestRestoreTaskRejectsMissingFields(t *testing.T) {
	p, owner := newTestProject(t)
	title, _ := NewTaskTitle("Write release notes")
	task, err := NewTask(p, title, "", owner.ID())
	require.NoError(t, err)

	tests := []struct {
		name  string
		field string
		edit  func(*TaskState)
	}{
		{"no id", "task_id", func(s *TaskState) { s.ID = TaskID{} }},
		{"no project", "project_id", func(s *TaskState) { s.ProjectID = ProjectID{} }},
		{"no title", "title", func(s *TaskState) { s.Title = TaskTitle{} }},
		{"no creator", "creator_id", func(s *TaskState) { s.CreatorID = UserID{} }},
		{"no priority", "priority", func(s *TaskState) { s.Priority = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := task.State()
			tt.edit(&state)
			_, err := RestoreTask(state)
			require.ErrorIs(t, err, domerrors.ErrValidation)
			var verr *domerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRetitleTask(t *testing.T) {
	p, owner := newTestProject(t)
	title, _ := NewTaskTitle("Write release notes")
	task, err := NewTask(p, title, "", owner.ID())
	require.NoError(t, err)

	renamed, err := NewTaskTitle("  Publish release notes ")
	require.NoError(t, err)
	require.NoError(t, task.Retitle(renamed))
	assert.Equal(t, "Publish release notes", task.Title().String())
	assert.ErrorIs(t, task.Retitle(TaskTitle{}), domerrors.ErrValidation)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	hasher := &fakeHasher{}
	svc := NewUserService(hasher)

	u, err := svc.CreateUser(ctx, mustUsername(t, "alice99"), Email{}, "Secr3t!Pass", "")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, u.Role())
	assert.True(t, u.IsActive())
	assert.False(t, u.ID().IsZero())
	assert.NotContains(t, string(u.PasswordHash().Bytes()), "Secr3t!Pass")

	ok, err := svc.VerifyPassword(ctx, u, "Secr3t!Pass")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.VerifyPassword(ctx, u, "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.ChangePassword(ctx, u, "N3w-Passw0rd"))
	ok, _ = svc.VerifyPassword(ctx, u, "N3w-Passw0rd")
	assert.True(t, ok)
	ok, _ = svc.VerifyPassword(ctx, u, "Secr3t!Pass")
	assert.False(t, ok)

	calls := hasher.calls
	_, err = svc.CreateUser(ctx, mustUsername(t, "bob1234"), Email{}, "short", "")
	assert.ErrorIs(t, err, domerrors.ErrValidation)
	assert.Equal(t, calls, hasher.calls, "too-short password must not reach the hasher")

	_, err = svc.CreateUser(ctx, mustUsername(t, "bob1234"), Email{}, "long-enough", "ROOT")
	assert.ErrorIs(t, err, domerrors.ErrValidation)
}
