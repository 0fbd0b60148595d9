package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// DefaultClassifier implements spec.md §4.3's retryable/non-retryable split:
// connection-class failures from either backing store are transient,
// everything else — validation errors, context cancellation, driver-level
// query errors — is terminal.
func DefaultClassifier(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var pgConnErr *pgconn.ConnectError
	if errors.As(err, &pgConnErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Only connection-exception class (08xxx) postgres errors are
		// transient; constraint violations and the like are not.
		return len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08"
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}

	return false
}
