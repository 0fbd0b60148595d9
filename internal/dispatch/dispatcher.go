// Package dispatch implements the Dual Dispatcher of spec.md §4.5: it
// composes a primary (relational) and secondary (document) task.Repository
// behind their own circuit breakers, worker pool and health probe, and
// exposes the same task.Repository port so callers cannot tell a dual store
// from a single one.
package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lmorales/dualtask/internal/breaker"
	"github.com/lmorales/dualtask/internal/probe"
	"github.com/lmorales/dualtask/internal/retry"
	"github.com/lmorales/dualtask/task"
)

// store bundles one backing adapter with its own breaker, retry policy and a
// label used for logging and error messages ("primary"/"secondary").
type store struct {
	name     string
	repo     task.Repository
	pinger   probe.Pinger
	breaker  *breaker.Breaker
	retryCfg retry.Config
}

// Dispatcher is the dual-store task.Repository implementation.
type Dispatcher struct {
	primary   store
	secondary store
	pool      *workerPool
	cfg       Config
	log       Logger
}

var _ task.Repository = (*Dispatcher)(nil)

// New builds a Dispatcher. primary is the relational store, secondary the
// document store (spec.md §4.5: "this asymmetry affects only read
// policy"). A nil logger defaults to NoopLogger.
func New(primaryRepo task.Repository, primaryPinger probe.Pinger, secondaryRepo task.Repository, secondaryPinger probe.Pinger, cfg Config, log Logger) *Dispatcher {
	cfg = cfg.Finalize()
	if log == nil {
		log = NoopLogger{}
	}

	d := &Dispatcher{
		cfg:  cfg,
		log:  log,
		pool: newWorkerPool(cfg.WorkerPoolSize),
	}

	d.primary = store{
		name:   "primary",
		repo:   primaryRepo,
		pinger: primaryPinger,
		breaker: breaker.New(breaker.Config{
			Name:             "primary",
			FailureThreshold: cfg.FailureThreshold,
			RecoveryTimeout:  cfg.RecoveryTimeout,
			OnTransition:     d.logTransition("primary"),
		}),
		retryCfg: d.retryConfigFor("primary", cfg),
	}
	d.secondary = store{
		name:   "secondary",
		repo:   secondaryRepo,
		pinger: secondaryPinger,
		breaker: breaker.New(breaker.Config{
			Name:             "secondary",
			FailureThreshold: cfg.FailureThreshold,
			RecoveryTimeout:  cfg.RecoveryTimeout,
			OnTransition:     d.logTransition("secondary"),
		}),
		retryCfg: d.retryConfigFor("secondary", cfg),
	}

	return d
}

func (d *Dispatcher) logTransition(name string) breaker.TransitionFunc {
	return func(from, to breaker.State, reason string) {
		d.log.Infow("breaker transition", "store", name, "from", from.String(), "to", to.String(), "reason", reason)
	}
}

// retryConfigFor builds the retry.Config for one named store, logging each
// retry attempt and its sleep duration per spec.md §6.
func (d *Dispatcher) retryConfigFor(name string, cfg Config) retry.Config {
	return retry.Config{
		MaxAttempts: cfg.RetryMaxAttempts + 1,
		BaseDelay:   cfg.RetryBaseDelay,
		Classify:    retry.DefaultClassifier,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			d.log.Infow("retry attempt", "store", name, "attempt", attempt, "error", err, "sleep", delay)
		},
	}
}

// Close releases the worker pool. The two store adapters are owned by the
// caller that constructed them and are not closed here.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.pool.Close()
	return nil
}

// Save implements task.Repository.
func (d *Dispatcher) Save(ctx context.Context, t task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return d.write(ctx, func(ctx context.Context, r task.Repository) error {
		return r.Save(ctx, t)
	})
}

// Delete implements task.Repository.
func (d *Dispatcher) Delete(ctx context.Context, id uuid.UUID) error {
	return d.write(ctx, func(ctx context.Context, r task.Repository) error {
		return r.Delete(ctx, id)
	})
}

// Get implements task.Repository.
func (d *Dispatcher) Get(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	return d.get(ctx, id)
}

// List implements task.Repository.
func (d *Dispatcher) List(ctx context.Context) ([]task.Task, error) {
	return d.list(ctx)
}
