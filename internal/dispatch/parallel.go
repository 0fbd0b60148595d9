package dispatch

import "context"

// writeParallel implements spec.md §4.5.2: both store operations are
// submitted to the shared worker pool and awaited under a combined
// parallelTimeout deadline.
func (d *Dispatcher) writeParallel(ctx context.Context, op writeFn) error {
	pctx, cancel := context.WithTimeout(ctx, d.cfg.ParallelTimeout)
	defer cancel()

	primaryCh := d.pool.Submit(pctx, func(ctx context.Context) error {
		return op(ctx, d.primary.repo)
	})
	secondaryCh := d.pool.Submit(pctx, func(ctx context.Context) error {
		return op(ctx, d.secondary.repo)
	})

	primaryErr := awaitParallel(pctx, "primary", primaryCh)
	secondaryErr := awaitParallel(pctx, "secondary", secondaryCh)

	if primaryErr == nil {
		d.primary.breaker.RecordSuccess()
	} else {
		d.primary.breaker.RecordFailure()
	}
	if secondaryErr == nil {
		d.secondary.breaker.RecordSuccess()
	} else {
		d.secondary.breaker.RecordFailure()
	}

	switch {
	case primaryErr == nil && secondaryErr == nil:
		d.log.Infow("parallel write succeeded on both stores")
		return nil
	case primaryErr == nil || secondaryErr == nil:
		d.log.Warnw("parallel write diverged, one store failed", "primaryErr", primaryErr, "secondaryErr", secondaryErr)
		return nil
	default:
		return &BothFailedError{PrimaryErr: primaryErr, SecondaryErr: secondaryErr}
	}
}

// awaitParallel waits for a submitted job's result, reporting a TimeoutError
// for name if ctx's deadline elapses first. The job itself is left to run
// to completion or be abandoned by its own context check — the dispatcher
// does not assume the underlying driver honors cancellation.
func awaitParallel(ctx context.Context, name string, ch <-chan error) error {
	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return &TimeoutError{Store: name}
	}
}
