package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{2,31}$`)
	emailRegex    = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
)

const (
	maxEmailLength       = 254
	maxProjectNameLength = 100
	maxTaskTitleLength   = 200
)

// Username is a login handle: 3-32 chars, starts with a letter, then letters, digits, '_' or '-'.
type Username struct{ value string }

// NewUsername validates s. Usernames are case-sensitive and not trimmed.
func NewUsername(s string) (Username, error) {
	if !usernameRegex.MatchString(s) {
		return Username{}, domerrors.NewValidationError("username",
			"must be 3-32 characters, start with a letter and contain only letters, digits, '_' or '-'")
	}
	return Username{value: s}, nil
}

func (u Username) String() string { return u.value }

// Email is a normalized (trimmed, lowercased) address. The zero value means "no email".
type Email struct{ value string }

func NewEmail(s string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) > maxEmailLength || !emailRegex.MatchString(v) {
		return Email{}, domerrors.NewValidationError("email", "must be a valid address")
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }

// IsZero reports whether no email was given.
func (e Email) IsZero() bool { return e.value == "" }

// PasswordHash is an opaque encoded hash produced by a PasswordHasher. It never holds a raw password.
// Stored as a string so the type stays comparable.
type PasswordHash struct{ value string }

func NewPasswordHash(b []byte) (PasswordHash, error) {
	if len(b) == 0 {
		return PasswordHash{}, domerrors.NewValidationError("password_hash", "must not be empty")
	}
	return PasswordHash{value: string(b)}, nil
}

// Bytes returns a copy of the encoded hash.
func (h PasswordHash) Bytes() []byte { return []byte(h.value) }

// String hides the hash so it cannot leak through logs.
func (h PasswordHash) String() string { return "[redacted]" }

// ProjectName is a trimmed, non-empty project name of at most 100 characters.
type ProjectName struct{ value string }

func NewProjectName(s string) (ProjectName, error) {
	v := strings.TrimSpace(s)
	if v == "" || utf8.RuneCountInString(v) > maxProjectNameLength {
		return ProjectName{}, domerrors.NewValidationError("name", "must be 1-100 characters")
	}
	return ProjectName{value: v}, nil
}

func (n ProjectName) String() string { return n.value }

// TaskTitle is a trimmed, non-empty task title of at most 200 characters.
type TaskTitle struct{ value string }

func NewTaskTitle(s string) (TaskTitle, error) {
	v := strings.TrimSpace(s)
	if v == "" || utf8.RuneCountInString(v) > maxTaskTitleLength {
		return TaskTitle{}, domerrors.NewValidationError("title", "must be 1-200 characters")
	}
	return TaskTitle{value: v}, nil
}

func (t TaskTitle) String() string { return t.value }
