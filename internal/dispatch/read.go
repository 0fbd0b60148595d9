package dispatch

import (
	"context"

	"github.com/google/uuid"

	"github.com/lmorales/dualtask/internal/retry"
	"github.com/lmorales/dualtask/task"
)

// get implements spec.md §4.5.4: primary is consulted first and a non-null
// hit returns immediately; a miss or a failure falls through to secondary.
// Absence is a business outcome — get never raises BothUnavailable.
func (d *Dispatcher) get(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	if d.primary.breaker.Allow() {
		val, err := retry.Do(ctx, d.primary.retryCfg, func(ctx context.Context) (*task.Task, error) {
			return d.primary.repo.Get(ctx, id)
		})
		if err == nil {
			d.primary.breaker.RecordSuccess()
			if val != nil {
				return val, nil
			}
		} else {
			d.primary.breaker.RecordFailure()
		}
	} else {
		d.log.Infow("read skipped", "store", "primary", "reason", "breaker open")
	}

	if d.secondary.breaker.Allow() {
		val, err := retry.Do(ctx, d.secondary.retryCfg, func(ctx context.Context) (*task.Task, error) {
			return d.secondary.repo.Get(ctx, id)
		})
		if err == nil {
			d.secondary.breaker.RecordSuccess()
			return val, nil
		}
		d.secondary.breaker.RecordFailure()
	} else {
		d.log.Infow("read skipped", "store", "secondary", "reason", "breaker open")
	}

	return nil, nil
}

// list implements spec.md §4.5.4's list variant: unlike get, an empty
// primary result is authoritative on success, and a secondary failure after
// a primary failure raises BothFailed rather than falling through.
func (d *Dispatcher) list(ctx context.Context) ([]task.Task, error) {
	var primaryErr error

	if d.primary.breaker.Allow() {
		vals, err := retry.Do(ctx, d.primary.retryCfg, func(ctx context.Context) ([]task.Task, error) {
			return d.primary.repo.List(ctx)
		})
		if err == nil {
			d.primary.breaker.RecordSuccess()
			return vals, nil
		}
		d.primary.breaker.RecordFailure()
		primaryErr = err
	} else {
		d.log.Infow("read skipped", "store", "primary", "reason", "breaker open")
	}

	if d.secondary.breaker.Allow() {
		vals, err := retry.Do(ctx, d.secondary.retryCfg, func(ctx context.Context) ([]task.Task, error) {
			return d.secondary.repo.List(ctx)
		})
		if err == nil {
			d.secondary.breaker.RecordSuccess()
			return vals, nil
		}
		d.secondary.breaker.RecordFailure()
		if primaryErr != nil {
			return nil, &BothFailedError{PrimaryErr: primaryErr, SecondaryErr: err}
		}
		return nil, err
	}
	d.log.Infow("read skipped", "store", "secondary", "reason", "breaker open")

	if primaryErr != nil {
		return nil, primaryErr
	}
	return nil, ErrBothUnavailable
}
