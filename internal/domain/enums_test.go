package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	for _, s := range []string{"LOW", "MEDIUM", "HIGH", "URGENT"} {
		p, err := ParsePriority(s)
		require.NoError(t, err)
		assert.Equal(t, Priority(s), p)
	}
	_, err = ParsePriority("low")
	assert.ErrorIs(t, err, domerrors.ErrValidation)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)
	_, err = ParseRole("ROOT")
	assert.ErrorIs(t, err, domerrors.ErrValidation)
}

func TestCanTransitionTo(t *testing.T) {
	all := []TaskStatus{StatusTodo, StatusInProgress, StatusDone, StatusCancelled}
	allowed := map[[2]TaskStatus]bool{
		{StatusTodo, StatusInProgress}:      true,
		{StatusTodo, StatusCancelled}:       true,
		{StatusInProgress, StatusTodo}:      true,
		{StatusInProgress, StatusDone}:      true,
		{StatusInProgress, StatusCancelled}: true,
		{StatusDone, StatusInProgress}:      true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]TaskStatus{from, to}], CanTransitionTo(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionRole(t *testing.T) {
	all := []Role{RoleUser, RoleAdmin, RoleSuperAdmin}
	for _, from := range all {
		for _, to := range all {
			want := (from == RoleUser && to == RoleAdmin) || (from == RoleAdmin && to == RoleUser)
			assert.Equal(t, want, CanTransitionRole(from, to), "%s -> %s", from, to)
		}
	}
}
