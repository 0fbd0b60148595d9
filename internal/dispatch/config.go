package dispatch

import "time"

// Config carries every dispatcher tunable named in spec.md §6, all
// optional, filled with the spec's defaults by Finalize (RetryMaxAttempts
// only when negative: a zero value means no retries). Mirrors the
// teacher's pattern of a plain settings struct consumed by New rather than
// global state.
type Config struct {
	FailureThreshold uint32
	RecoveryTimeout  time.Duration
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	ParallelTimeout  time.Duration
	PingTimeout      time.Duration
	WorkerPoolSize   int
}

const (
	defaultFailureThreshold = 3
	defaultRecoveryTimeout  = 30 * time.Second
	defaultRetryMaxAttempts = 2
	defaultRetryBaseDelay   = 500 * time.Millisecond
	defaultParallelTimeout  = 10 * time.Second
	defaultPingTimeout      = 3 * time.Second
	defaultWorkerPoolSize   = 4
)

// Finalize returns a copy of c with every zero-valued field replaced by its
// spec.md default, except RetryMaxAttempts, which is replaced only when
// negative.
func (c Config) Finalize() Config {
	if c.FailureThreshold == 0 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.RecoveryTimeout == 0 {
		c.RecoveryTimeout = defaultRecoveryTimeout
	}
	if c.RetryBaseDelay == 0 {
		c.RetryBaseDelay = defaultRetryBaseDelay
	}
	if c.ParallelTimeout == 0 {
		c.ParallelTimeout = defaultParallelTimeout
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = defaultPingTimeout
	}
	if c.WorkerPoolSize == 0 {
		c.WorkerPoolSize = defaultWorkerPoolSize
	}
	// 0 is a legitimate explicit value (scenario S5 requires it), so only a
	// negative value is treated as "unset".
	if c.RetryMaxAttempts < 0 {
		c.RetryMaxAttempts = defaultRetryMaxAttempts
	}
	return c
}
