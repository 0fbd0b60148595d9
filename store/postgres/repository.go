// Package postgres implements task.Repository and probe.Pinger against a
// relational store using pgx/v5. It is the spec's "primary" adapter: a thin
// CRUD wrapper, deliberately stopping short of ORM binding or migrations —
// spec.md §1 scopes those out, so this package only ever issues the four
// queries task.Repository needs.
package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lmorales/dualtask/task"
)

// Repository is a pgxpool-backed task.Repository. Callers own the pool's
// lifecycle: construct it with pgxpool.New, pass it to New, and Close it at
// shutdown — this mirrors the Design Notes' "long-lived owned resource,
// released at shutdown" guidance rather than this package opening its own
// pool implicitly.
type Repository struct {
	pool *pgxpool.Pool
}

// New wraps an already-configured pool. Schema setup (the tasks table) is
// an operational concern left to migrations, not this package.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ task.Repository = (*Repository)(nil)

// Save upserts t by id.
func (r *Repository) Save(ctx context.Context, t task.Task) error {
	const query = `
		INSERT INTO tasks (id, title, description, state)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    state = EXCLUDED.state`
	_, err := r.pool.Exec(ctx, query, t.ID.String(), t.Title, t.Description, string(t.State))
	return err
}

// Get looks up a Task by id, returning (nil, nil) on a miss per
// task.Repository's contract.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	const query = `SELECT id, title, description, state FROM tasks WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id.String())

	var t task.Task
	var rawID, state string
	if err := row.Scan(&rawID, &t.Title, &t.Description, &state); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	parsedID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	t.ID = parsedID
	t.State = task.State(state)
	return &t, nil
}

// List enumerates all tasks.
func (r *Repository) List(ctx context.Context) ([]task.Task, error) {
	const query = `SELECT id, title, description, state FROM tasks`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []task.Task
	for rows.Next() {
		var t task.Task
		var rawID, state string
		if err := rows.Scan(&rawID, &t.Title, &t.Description, &state); err != nil {
			return nil, err
		}
		parsedID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, err
		}
		t.ID = parsedID
		t.State = task.State(state)
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a Task by id. Deleting an absent id is a no-op.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id.String())
	return err
}

// Ping performs a minimal round trip, satisfying probe.Pinger. No
// DSN-based short-circuit is applied for any "file-backed" configuration —
// every call performs a real query against the pool.
func (r *Repository) Ping(ctx context.Context) error {
	var one int
	return r.pool.QueryRow(ctx, "SELECT 1").Scan(&one)
}
