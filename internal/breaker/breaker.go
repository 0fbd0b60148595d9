// Package breaker implements the per-store circuit breaker of spec.md §4.2:
// a CLOSED/OPEN/HALF_OPEN state machine guarding admission to a single
// backing store.
//
// The state machine is deliberately plainer than an adaptive,
// percentage-of-traffic breaker (contrast the teacher package this is
// adapted from, github.com/1mb-dev/autobreaker/internal/breaker, which trips
// on failure *rate*): spec.md fixes a simple consecutive-failure threshold,
// so that is all this package implements.
package breaker

import (
	"sync/atomic"
	"time"
)

// State is the current admission state of a Breaker.
type State int32

const (
	// StateClosed is the initial state: requests are admitted, failures are
	// counted against failureThreshold.
	StateClosed State = iota
	// StateOpen rejects admission until recoveryTimeout has elapsed since
	// the last recorded failure.
	StateOpen
	// StateHalfOpen admits exactly one trial request's effect on the state:
	// the next recordSuccess/recordFailure decides CLOSED or OPEN.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// timeNow is overridden in tests to make recoveryTimeout elapsing
// deterministic, the same hook other_examples/.../kalbasit-ncps uses for its
// postgres lock circuit breaker (postgres.MockTimeNow).
var timeNow = time.Now

// SetClock overrides the clock every Breaker consults for recovery-timeout
// arithmetic and returns a restore function. Exported so packages that
// compose a Breaker (internal/dispatch) can drive its clock deterministically
// from their own tests without reaching into an unexported field.
func SetClock(now func() time.Time) (restore func()) {
	prev := timeNow
	timeNow = now
	return func() { timeNow = prev }
}

// TransitionFunc is invoked after every state change, receiving the previous
// and new state and the reason spec.md §6 asks emitted logs to carry.
type TransitionFunc func(from, to State, reason string)

// Breaker is a single store's failure-isolation gate. All methods are safe
// for concurrent use; state lives entirely in atomic fields, following the
// teacher's lock-free CAS discipline (internal/breaker/state.go) rather than
// a mutex-guarded struct.
type Breaker struct {
	name string

	failureThreshold uint32
	recoveryTimeout  time.Duration

	state        atomic.Int32 // State
	failureCount atomic.Uint32
	// lastFailureAtNano is 0 when there has been no failure since the last
	// reset/success (the Go encoding of spec.md's lastFailureAt = null).
	lastFailureAtNano atomic.Int64

	onTransition TransitionFunc
}

// Config configures a Breaker. FailureThreshold and RecoveryTimeout default
// to spec.md §3's values (3, 30s) when left zero, mirroring the teacher's
// "fill defaults in New" idiom.
type Config struct {
	Name             string
	FailureThreshold uint32
	RecoveryTimeout  time.Duration
	OnTransition     TransitionFunc
}

const (
	defaultFailureThreshold = 3
	defaultRecoveryTimeout  = 30 * time.Second
)

// New builds a Breaker in the initial CLOSED state.
func New(cfg Config) *Breaker {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = defaultFailureThreshold
	}
	timeout := cfg.RecoveryTimeout
	if timeout == 0 {
		timeout = defaultRecoveryTimeout
	}
	return &Breaker{
		name:             cfg.Name,
		failureThreshold: threshold,
		recoveryTimeout:  timeout,
		onTransition:     cfg.OnTransition,
	}
}

// Name returns the breaker's identifier, used only for logging.
func (b *Breaker) Name() string { return b.name }

// ObserveState returns the current state. If the state is OPEN and
// recoveryTimeout has elapsed since the last recorded failure, it performs
// the lazy OPEN → HALF_OPEN transition as a side effect before returning
// (spec.md §4.2).
func (b *Breaker) ObserveState() State {
	if State(b.state.Load()) != StateOpen {
		return State(b.state.Load())
	}

	lastFailure := b.lastFailureAtNano.Load()
	if lastFailure == 0 {
		return StateOpen
	}
	elapsed := time.Duration(timeNow().UnixNano() - lastFailure)
	if elapsed < b.recoveryTimeout {
		return StateOpen
	}

	if b.state.CompareAndSwap(int32(StateOpen), int32(StateHalfOpen)) {
		b.notify(StateOpen, StateHalfOpen, "recovery timeout elapsed")
	}
	return StateHalfOpen
}

// Allow reports whether a call should be admitted: true iff ObserveState is
// CLOSED or HALF_OPEN. In HALF_OPEN, Allow itself never demotes the state —
// only the subsequent RecordSuccess/RecordFailure decides the next
// transition (spec.md §4.2).
func (b *Breaker) Allow() bool {
	switch b.ObserveState() {
	case StateClosed, StateHalfOpen:
		return true
	default:
		return false
	}
}

// RecordSuccess transitions the breaker to CLOSED from any state and resets
// the failure counter.
func (b *Breaker) RecordSuccess() {
	prev := State(b.state.Swap(int32(StateClosed)))
	b.failureCount.Store(0)
	b.lastFailureAtNano.Store(0)
	if prev != StateClosed {
		b.notify(prev, StateClosed, "success recorded")
	}
}

// RecordFailure increments the failure counter and timestamps the failure.
// From HALF_OPEN it transitions unconditionally to OPEN; from CLOSED it
// transitions to OPEN once failureCount reaches failureThreshold.
func (b *Breaker) RecordFailure() {
	count := b.failureCount.Add(1)
	b.lastFailureAtNano.Store(timeNow().UnixNano())

	switch State(b.state.Load()) {
	case StateHalfOpen:
		if b.state.CompareAndSwap(int32(StateHalfOpen), int32(StateOpen)) {
			b.notify(StateHalfOpen, StateOpen, "trial request failed")
		}
	case StateClosed:
		if count >= b.failureThreshold {
			if b.state.CompareAndSwap(int32(StateClosed), int32(StateOpen)) {
				b.notify(StateClosed, StateOpen, "failure threshold reached")
			}
		}
	}
}

// Reset forces the breaker back to its initial CLOSED state (testing
// affordance, spec.md §4.2).
func (b *Breaker) Reset() {
	prev := State(b.state.Swap(int32(StateClosed)))
	b.failureCount.Store(0)
	b.lastFailureAtNano.Store(0)
	if prev != StateClosed {
		b.notify(prev, StateClosed, "reset")
	}
}

// FailureCount returns the current consecutive-failure count, for tests and
// diagnostics.
func (b *Breaker) FailureCount() uint32 {
	return b.failureCount.Load()
}

func (b *Breaker) notify(from, to State, reason string) {
	if b.onTransition != nil {
		b.onTransition(from, to, reason)
	}
}
