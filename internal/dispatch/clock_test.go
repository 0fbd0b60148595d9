package dispatch

import (
	"testing"
	"time"

	"github.com/lmorales/dualtask/internal/breaker"
)

// withFrozenDispatchClock freezes the clock both breakers consult so
// recovery-timeout elapsing is deterministic across this package's tests,
// mirroring internal/breaker's own withFrozenClock helper.
func withFrozenDispatchClock(t *testing.T) (advance func(time.Duration)) {
	t.Helper()
	now := time.Unix(1700000000, 0)
	restore := breaker.SetClock(func() time.Time { return now })
	t.Cleanup(restore)
	return func(d time.Duration) { now = now.Add(d) }
}
