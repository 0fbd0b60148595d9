package dispatch

import "go.uber.org/zap"

// Logger is the structured logging sink the dispatcher emits the events of
// spec.md §6 to: breaker transitions, probe results, parallel outcomes,
// retry attempts, single-store fallback reasons. Modeled as a narrow
// interface rather than a concrete *zap.Logger so tests can inject a
// recording fake, the same seam the teacher's autobreaker package leaves
// for its own diagnostics hooks.
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// ZapLogger adapts a *zap.SugaredLogger to Logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps an existing zap logger.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: l.Sugar()}
}

func (z *ZapLogger) Infow(msg string, keysAndValues ...interface{}) {
	z.sugar.Infow(msg, keysAndValues...)
}

func (z *ZapLogger) Warnw(msg string, keysAndValues ...interface{}) {
	z.sugar.Warnw(msg, keysAndValues...)
}

func (z *ZapLogger) Errorw(msg string, keysAndValues ...interface{}) {
	z.sugar.Errorw(msg, keysAndValues...)
}

// NoopLogger discards everything. Used as the Dispatcher's default and by
// tests that do not care about log output.
type NoopLogger struct{}

func (NoopLogger) Infow(string, ...interface{})  {}
func (NoopLogger) Warnw(string, ...interface{})  {}
func (NoopLogger) Errorw(string, ...interface{}) {}
