// Package probe implements the health check of spec.md §4.4: both backing
// stores are pinged in parallel under a shared timeout, the way the Python
// original used ThreadPoolExecutor.as_completed — here expressed with
// goroutines and a buffered channel per store.
package probe

import (
	"context"
	"time"
)

// Pinger is satisfied by any store adapter that can answer a lightweight
// liveness check. Both store/postgres.Repository and store/mongo.Repository
// implement it alongside task.Repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Result is the outcome of probing one store.
type Result struct {
	OK  bool
	Err error
}

// Both pings primary and secondary concurrently, each bounded by timeout,
// and returns once both have answered or the timeout has elapsed. A store
// that does not answer within timeout is reported as not OK without
// blocking the other store's result.
func Both(ctx context.Context, primary, secondary Pinger, timeout time.Duration) (primaryResult, secondaryResult Result) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	primaryCh := make(chan Result, 1)
	secondaryCh := make(chan Result, 1)

	go func() { primaryCh <- ping(ctx, primary) }()
	go func() { secondaryCh <- ping(ctx, secondary) }()

	primaryResult = awaitResult(ctx, primaryCh)
	secondaryResult = awaitResult(ctx, secondaryCh)
	return primaryResult, secondaryResult
}

func ping(ctx context.Context, p Pinger) Result {
	if err := p.Ping(ctx); err != nil {
		return Result{OK: false, Err: err}
	}
	return Result{OK: true}
}

func awaitResult(ctx context.Context, ch <-chan Result) Result {
	select {
	case r := <-ch:
		return r
	case <-ctx.Done():
		return Result{OK: false, Err: ctx.Err()}
	}
}
