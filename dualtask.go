// Package dualtask provides a resilient dual-store task repository: writes
// and reads are dispatched across a relational primary and a document
// secondary store, each behind its own circuit breaker, with retry and a
// bounded worker pool absorbing the failure modes of either store
// independently.
//
// # Overview
//
// A single logical task.Repository is backed by two physically distinct
// stores. Writes attempt both stores when both are healthy; reads prefer
// the primary and fall back to the secondary. Neither store's outage
// blocks the other's traffic once its breaker has tripped.
//
// # Quick Start
//
//	d := dualtask.New(primaryRepo, primaryPinger, secondaryRepo, secondaryPinger,
//		dualtask.Config{}, nil)
//	defer d.Close(context.Background())
//
//	if err := d.Save(ctx, task.New("title", "description")); err != nil {
//		// handle ErrBothUnavailable / *BothFailedError
//	}
//
// # Store Selection
//
// store/postgres and store/mongo implement task.Repository directly for
// single-store deployments (config.ORMPrimary / config.ORMSecondary);
// dualtask.New composes both for config.ORMDual.
package dualtask

import (
	"time"

	"github.com/lmorales/dualtask/internal/dispatch"
	"github.com/lmorales/dualtask/internal/probe"
	"github.com/lmorales/dualtask/task"
)

// Config re-exports the dispatcher's tunables so callers only need to
// import the root package for common wiring.
type Config = dispatch.Config

// Logger re-exports the dispatcher's structured logging seam.
type Logger = dispatch.Logger

// NewZapLogger re-exports the zap-backed Logger constructor.
var NewZapLogger = dispatch.NewZapLogger

// Sentinel and typed errors a caller should match against with
// errors.Is/errors.As.
var (
	ErrBothUnavailable = dispatch.ErrBothUnavailable
)

// BothFailedError re-exports the dispatcher's aggregate write/list error.
type BothFailedError = dispatch.BothFailedError

// TimeoutError re-exports the dispatcher's parallel-path deadline error.
type TimeoutError = dispatch.TimeoutError

// Dispatcher is the dual-store task.Repository.
type Dispatcher = dispatch.Dispatcher

// New builds a Dispatcher composing primary (relational) and secondary
// (document) stores. primaryPinger/secondaryPinger are usually the same
// value as primaryRepo/secondaryRepo when the adapter implements both
// task.Repository and probe.Pinger, as store/postgres and store/mongo do.
func New(
	primaryRepo task.Repository, primaryPinger probe.Pinger,
	secondaryRepo task.Repository, secondaryPinger probe.Pinger,
	cfg Config, log Logger,
) *Dispatcher {
	return dispatch.New(primaryRepo, primaryPinger, secondaryRepo, secondaryPinger, cfg, log)
}

// ConfigFromDurations is a convenience constructor for wiring Config from
// plain durations, such as those a config.Config loaded from the
// environment returns from its duration helpers.
func ConfigFromDurations(failureThreshold uint32, recoveryTimeout time.Duration, retryMaxAttempts int, retryBaseDelay, parallelTimeout, pingTimeout time.Duration, workerPoolSize int) Config {
	return Config{
		FailureThreshold: failureThreshold,
		RecoveryTimeout:  recoveryTimeout,
		RetryMaxAttempts: retryMaxAttempts,
		RetryBaseDelay:   retryBaseDelay,
		ParallelTimeout:  parallelTimeout,
		PingTimeout:      pingTimeout,
		WorkerPoolSize:   workerPoolSize,
	}
}
