package dispatch

import (
	"errors"
	"fmt"
)

// ErrBothUnavailable is returned by writes and List when neither store is
// reachable: both breakers were open, or both probes failed (spec.md §7).
var ErrBothUnavailable = errors.New("dispatch: both stores unavailable")

// BothFailedError is returned when both stores were attempted but both
// calls failed. It carries both underlying causes so a caller can inspect
// either with errors.As/errors.Unwrap.
type BothFailedError struct {
	PrimaryErr   error
	SecondaryErr error
}

func (e *BothFailedError) Error() string {
	return fmt.Sprintf("dispatch: both stores failed: primary: %v, secondary: %v", e.PrimaryErr, e.SecondaryErr)
}

// Unwrap exposes both causes to errors.Is/errors.As, following the
// multi-error convention of Go 1.20+ (errors.Join-compatible shape).
func (e *BothFailedError) Unwrap() []error {
	return []error{e.PrimaryErr, e.SecondaryErr}
}

// TimeoutError marks a store operation that did not complete before the
// parallel path's combined deadline elapsed.
type TimeoutError struct {
	Store string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("dispatch: %s operation timed out", e.Store)
}
