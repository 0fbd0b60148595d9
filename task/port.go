package task

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the polymorphic capability set every concrete store adapter,
// and the Dual Dispatcher itself, must provide (spec.md §4.1).
//
// Get distinguishes "absent" from "lookup failed" by returning (nil, nil) for
// a miss — absence is never an error. Delete is idempotent: deleting an
// absent id must not fail.
type Repository interface {
	// Save upserts t by id.
	Save(ctx context.Context, t Task) error

	// Get looks up a Task by id. A nil, nil return means the id does not
	// exist; it is a business outcome, not an error.
	Get(ctx context.Context, id uuid.UUID) (*Task, error)

	// List enumerates all tasks. Order is unspecified.
	List(ctx context.Context) ([]Task, error)

	// Delete removes a Task by id. Deleting an absent id is a no-op, not an
	// error.
	Delete(ctx context.Context, id uuid.UUID) error
}
