// Package task holds the domain entity the Dual Repository persists and the
// abstract Repository port every concrete store adapter implements.
package task

import (
	"errors"

	"github.com/google/uuid"
)

// State is the lifecycle state of a Task.
type State string

const (
	// StatePending is the default state of a newly created Task.
	StatePending State = "PENDING"
	// StateInProgress marks a Task as actively being worked.
	StateInProgress State = "IN_PROGRESS"
	// StateCompleted marks a Task as finished.
	StateCompleted State = "COMPLETED"
)

// Valid reports whether s is one of the three defined states.
func (s State) Valid() bool {
	switch s {
	case StatePending, StateInProgress, StateCompleted:
		return true
	default:
		return false
	}
}

// ErrInvalidTask is returned by validation when a Task fails basic sanity
// checks (empty title, unknown state). It is a Logic-class error: never
// retried, propagated straight to the caller.
var ErrInvalidTask = errors.New("task: invalid task")

// Task is the persisted entity. ID is the immutable key; every other field
// is overwritten wholesale on Save — there is no partial update at the port
// level.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	State       State
}

// New builds a Task with a freshly generated ID and State defaulted to
// StatePending, the way an external use case is expected to construct one
// before handing it to Repository.Save.
func New(title, description string) Task {
	return Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		State:       StatePending,
	}
}

// Validate checks the invariants spec.md §3 places on a Task: a non-empty
// title and a recognized state.
func (t Task) Validate() error {
	if t.Title == "" {
		return ErrInvalidTask
	}
	if !t.State.Valid() {
		return ErrInvalidTask
	}
	return nil
}
