package domain

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

func TestNewUsername(t *testing.T) {
	valid := []string{"alice99", "abc", "A_b-c", "z" + strings.Repeat("9", 31)}
	for _, s := range valid {
		t.Run("valid "+s, func(t *testing.T) {
			a, err := NewUsername(s)
			require.NoError(t, err)
			b, err := NewUsername(s)
			require.NoError(t, err)
			assert.Equal(t, a, b)
			assert.True(t, a == b)
			assert.Equal(t, s, a.String())
		})
	}

	invalid := []string{"", "ab", "9lives", "_alice", "alice smith", "al!ce", "a" + strings.Repeat("b", 32), "ålice"}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			_, err := NewUsername(s)
			require.Error(t, err)
			assert.ErrorIs(t, err, domerrors.ErrValidation)
			var ve *domerrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "username", ve.Field)
		})
	}
}

func TestUsernameUsableAsMapKey(t *testing.T) {
	a, _ := NewUsername("alice99")
	b, _ := NewUsername("alice99")
	seen := map[Username]int{a: 1}
	seen[b]++
	assert.Len(t, seen, 1)
	assert.Equal(t, 2, seen[a])
}

func TestNewEmail(t *testing.T) {
	e, err := NewEmail("  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", e.String())
	assert.False(t, e.IsZero())

	other, err := NewEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, e, other)

	for _, s := range []string{"", "alice", "alice@", "@example.com", "alice@example", strings.Repeat("a", 250) + "@x.io"} {
		_, err := NewEmail(s)
		assert.ErrorIs(t, err, domerrors.ErrValidation, s)
	}
	assert.True(t, Email{}.IsZero())
}

func TestPasswordHash(t *testing.T) {
	_, err := NewPasswordHash(nil)
	assert.ErrorIs(t, err, domerrors.ErrValidation)

	raw := []byte("$argon2id$v=19$abc")
	h, err := NewPasswordHash(raw)
	require.NoError(t, err)
	raw[0] = 'X'
	assert.Equal(t, "$argon2id$v=19$abc", string(h.Bytes()), "constructor must copy input")

	out := h.Bytes()
	out[0] = 'Y'
	assert.Equal(t, "$argon2id$v=19$abc", string(h.Bytes()), "Bytes must return a copy")
	assert.Equal(t, "[redacted]", h.String())
}

func TestProjectNameAndTaskTitle(t *testing.T) {
	n, err := NewProjectName("  Roadmap ")
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", n.String())
	_, err = NewProjectName("   ")
	assert.ErrorIs(t, err, domerrors.ErrValidation)
	_, err = NewProjectName(strings.Repeat("x", 101))
	assert.ErrorIs(t, err, domerrors.ErrValidation)

	title, err := NewTaskTitle("Write release notes")
	require.NoError(t, err)
	assert.Equal(t, "Write release notes", title.String())
	_, err = NewTaskTitle("")
	assert.ErrorIs(t, err, domerrors.ErrValidation)
	_, err = NewTaskTitle(strings.Repeat("é", 201))
	assert.ErrorIs(t, err, domerrors.ErrValidation)
}

func TestParseIDs(t *testing.T) {
	id := NewUserID()
	parsed, err := ParseUserID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseUserID("not-a-uuid")
	assert.ErrorIs(t, err, domerrors.ErrValidation)
	_, err = ParseProjectID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domerrors.ErrValidation)
	_, err = ParseTaskID(NewTaskID().String())
	assert.NoError(t, err)
	assert.NotEqual(t, NewProjectID(), NewProjectID())
}

// Every value object must carry at least one semantic field and be comparable, so that
// equality and hashing are structural.
func TestValueObjectsHaveFieldsAndAreComparable(t *testing.T) {
	values := []any{
		UserID{}, ProjectID{}, TaskID{},
		Username{}, Email{}, PasswordHash{}, ProjectName{}, TaskTitle{},
	}
	for _, v := range values {
		typ := reflect.TypeOf(v)
		t.Run(typ.Name(), func(t *testing.T) {
			assert.Equal(t, reflect.Struct, typ.Kind())
			assert.Positive(t, typ.NumField())
			assert.True(t, typ.Comparable())
		})
	}
}
