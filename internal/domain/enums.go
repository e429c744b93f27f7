package domain

import (
	"slices"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// transitions is a static adjacency table for a constrained state machine.
type transitions[S comparable] map[S][]S

func (t transitions[S]) allows(from, to S) bool {
	return slices.Contains(t[from], to)
}

// Role is a user's privilege level.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

var roleTransitions = transitions[Role]{
	RoleUser:  {RoleAdmin},
	RoleAdmin: {RoleUser},
}

// ParseRole validates s. The empty string resolves to RoleUser.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return r, nil
	}
	return "", domerrors.NewValidationError("role", "must be one of USER, ADMIN, SUPER_ADMIN")
}

// CanTransitionRole reports whether a user holding from may be moved to to.
func CanTransitionRole(from, to Role) bool {
	return roleTransitions.allows(from, to)
}

// Priority of a task. Never empty on a constructed Task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// DefaultPriority is used when a task is created without one.
const DefaultPriority = PriorityMedium

// ParsePriority validates s. The empty string resolves to DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case "":
		return DefaultPriority, nil
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, nil
	}
	return "", domerrors.NewValidationError("priority", "must be one of LOW, MEDIUM, HIGH, URGENT")
}

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
	StatusCancelled  TaskStatus = "CANCELLED"
)

var statusTransitions = transitions[TaskStatus]{
	StatusTodo:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusTodo, StatusDone, StatusCancelled},
	StatusDone:       {StatusInProgress},
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch st := TaskStatus(s); st {
	case StatusTodo, StatusInProgress, StatusDone, StatusCancelled:
		return st, nil
	}
	return "", domerrors.NewValidationError("status", "must be one of TODO, IN_PROGRESS, DONE, CANCELLED")
}

// CanTransitionTo reports whether a task in current may move to target.
// CANCELLED is terminal.
func CanTransitionTo(current, target TaskStatus) bool {
	return statusTransitions.allows(current, target)
}
