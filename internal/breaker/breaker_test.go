package breaker

import (
	"testing"
	"time"
)

// withFrozenClock swaps timeNow for a controllable fake for the duration of
// the test, the same technique other_examples/.../kalbasit-ncps uses
// (MockTimeNow) to make recovery-timeout elapsing deterministic.
func withFrozenClock(t *testing.T) (advance func(time.Duration)) {
	t.Helper()
	now := time.Unix(1700000000, 0)
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
	return func(d time.Duration) { now = now.Add(d) }
}

func newTestBreaker() *Breaker {
	return New(Config{
		Name:             "test",
		FailureThreshold: 3,
		RecoveryTimeout:  30 * time.Second,
	})
}

func TestBreaker_StartsClosed(t *testing.T) {
	b := newTestBreaker()
	if b.ObserveState() != StateClosed {
		t.Fatalf("new breaker state = %v, want CLOSED", b.ObserveState())
	}
	if !b.Allow() {
		t.Fatal("Allow() = false on fresh CLOSED breaker")
	}
}

func TestBreaker_OpensAtFailureThreshold(t *testing.T) {
	withFrozenClock(t)
	b := newTestBreaker()

	b.RecordFailure()
	b.RecordFailure()
	if b.ObserveState() != StateClosed {
		t.Fatalf("state = %v after 2 failures, want CLOSED", b.ObserveState())
	}

	b.RecordFailure()
	if b.ObserveState() != StateOpen {
		t.Fatalf("state = %v after 3 failures, want OPEN", b.ObserveState())
	}
	if b.Allow() {
		t.Fatal("Allow() = true on OPEN breaker before recovery timeout")
	}
}

func TestBreaker_HalfOpenAfterRecoveryTimeout(t *testing.T) {
	advance := withFrozenClock(t)
	b := newTestBreaker()

	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}
	if b.ObserveState() != StateOpen {
		t.Fatalf("state = %v, want OPEN", b.ObserveState())
	}

	advance(29 * time.Second)
	if b.ObserveState() != StateOpen {
		t.Fatal("breaker transitioned to HALF_OPEN before recovery timeout elapsed")
	}

	advance(2 * time.Second)
	if got := b.ObserveState(); got != StateHalfOpen {
		t.Fatalf("state = %v after recovery timeout, want HALF_OPEN", got)
	}
}

func TestBreaker_HalfOpenSuccessCloses(t *testing.T) {
	advance := withFrozenClock(t)
	b := newTestBreaker()

	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}
	advance(31 * time.Second)
	if b.ObserveState() != StateHalfOpen {
		t.Fatal("breaker did not reach HALF_OPEN")
	}

	b.RecordSuccess()
	if b.ObserveState() != StateClosed {
		t.Fatalf("state = %v after success in HALF_OPEN, want CLOSED", b.ObserveState())
	}
	if b.FailureCount() != 0 {
		t.Fatalf("failureCount = %d after recovery, want 0", b.FailureCount())
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	advance := withFrozenClock(t)
	b := newTestBreaker()

	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}
	advance(31 * time.Second)
	if b.ObserveState() != StateHalfOpen {
		t.Fatal("breaker did not reach HALF_OPEN")
	}

	b.RecordFailure()
	if b.ObserveState() != StateOpen {
		t.Fatalf("state = %v after trial failure, want OPEN", b.ObserveState())
	}
}

func TestBreaker_SuccessResetsCountInClosed(t *testing.T) {
	withFrozenClock(t)
	b := newTestBreaker()

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	if b.FailureCount() != 0 {
		t.Fatalf("failureCount = %d after success, want 0", b.FailureCount())
	}

	b.RecordFailure()
	b.RecordFailure()
	if b.ObserveState() != StateClosed {
		t.Fatal("2 failures after a reset tripped the breaker early")
	}
}

func TestBreaker_Reset(t *testing.T) {
	withFrozenClock(t)
	b := newTestBreaker()
	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}
	if b.ObserveState() != StateOpen {
		t.Fatal("breaker did not open")
	}

	b.Reset()
	if b.ObserveState() != StateClosed {
		t.Fatalf("state = %v after Reset, want CLOSED", b.ObserveState())
	}
	if !b.Allow() {
		t.Fatal("Allow() = false immediately after Reset")
	}
}

func TestBreaker_TransitionCallback(t *testing.T) {
	withFrozenClock(t)
	var transitions []string
	b := New(Config{
		Name:             "cb",
		FailureThreshold: 1,
		RecoveryTimeout:  time.Second,
		OnTransition: func(from, to State, reason string) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	b.RecordFailure()
	if len(transitions) != 1 || transitions[0] != "CLOSED->OPEN" {
		t.Fatalf("transitions = %v, want [CLOSED->OPEN]", transitions)
	}
}

func TestBreaker_ConcurrentRecordFailureDoesNotPanicOrDoubleCount(t *testing.T) {
	withFrozenClock(t)
	b := newTestBreaker()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			b.RecordFailure()
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if b.ObserveState() != StateOpen {
		t.Fatalf("state = %v after 10 concurrent failures, want OPEN", b.ObserveState())
	}
	if b.FailureCount() != 10 {
		t.Fatalf("failureCount = %d after 10 concurrent failures, want 10", b.FailureCount())
	}
}
