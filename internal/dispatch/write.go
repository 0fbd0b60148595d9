package dispatch

import (
	"context"

	"github.com/lmorales/dualtask/internal/probe"
	"github.com/lmorales/dualtask/internal/retry"
	"github.com/lmorales/dualtask/task"
)

// writeFn performs one store operation (save or delete) against r.
type writeFn func(ctx context.Context, r task.Repository) error

// write implements spec.md §4.5.1: the write policy branching on which
// breakers currently allow traffic.
func (d *Dispatcher) write(ctx context.Context, op writeFn) error {
	allowPrimary := d.primary.breaker.Allow()
	allowSecondary := d.secondary.breaker.Allow()

	switch {
	case !allowPrimary && !allowSecondary:
		d.log.Warnw("write rejected, both breakers open")
		return ErrBothUnavailable

	case allowPrimary && !allowSecondary:
		d.log.Infow("write single-store fallback", "store", "primary", "reason", "secondary breaker open")
		return d.singleStoreWrite(ctx, d.primary, op)

	case !allowPrimary && allowSecondary:
		d.log.Infow("write single-store fallback", "store", "secondary", "reason", "primary breaker open")
		return d.singleStoreWrite(ctx, d.secondary, op)

	default:
		return d.writeBothAllowed(ctx, op)
	}
}

// writeBothAllowed implements spec.md §4.5.1 step 4: both breakers allow
// traffic, so a liveness probe decides between the parallel path and a
// single-store fallback.
func (d *Dispatcher) writeBothAllowed(ctx context.Context, op writeFn) error {
	primaryResult, secondaryResult := probe.Both(ctx, d.primary.pinger, d.secondary.pinger, d.cfg.PingTimeout)
	d.log.Infow("probe result", "primaryOK", primaryResult.OK, "secondaryOK", secondaryResult.OK)

	switch {
	case !primaryResult.OK && !secondaryResult.OK:
		d.primary.breaker.RecordFailure()
		d.secondary.breaker.RecordFailure()
		d.log.Warnw("write rejected, both probes failed")
		return ErrBothUnavailable

	case primaryResult.OK && !secondaryResult.OK:
		d.secondary.breaker.RecordFailure()
		d.log.Infow("write single-store fallback", "store", "primary", "reason", "secondary probe failed")
		return d.singleStoreWrite(ctx, d.primary, op)

	case !primaryResult.OK && secondaryResult.OK:
		d.primary.breaker.RecordFailure()
		d.log.Infow("write single-store fallback", "store", "secondary", "reason", "primary probe failed")
		return d.singleStoreWrite(ctx, d.secondary, op)

	default:
		return d.writeParallel(ctx, op)
	}
}

// singleStoreWrite implements spec.md §4.5.3: the surviving store's
// operation wrapped in the retry policy, executed synchronously.
func (d *Dispatcher) singleStoreWrite(ctx context.Context, s store, op writeFn) error {
	_, err := retry.Do(ctx, s.retryCfg, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx, s.repo)
	})
	if err != nil {
		s.breaker.RecordFailure()
		return err
	}
	s.breaker.RecordSuccess()
	return nil
}
