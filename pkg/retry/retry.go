// Package retry provides a bounded retry decorator for individual datastore
// calls. It exists to smooth over intermittent connection drops from managed
// database proxies; it deliberately wraps single calls, never a whole
// transaction.
package retry

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"time"
)

// DefaultRetries is how many times an operation is re-attempted after the
// first failure.
const DefaultRetries = 2

// Predicate reports whether an error is worth retrying.
type Predicate func(error) bool

// Backoff returns how long to wait before the given re-attempt
// (attempt starts at 0 for the first retry).
type Backoff func(attempt int) time.Duration

// LinearBackoff waits 1s, 2s, 3s... between attempts.
func LinearBackoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * time.Second
}

// Do runs op, re-attempting up to retries times when retryable(err) holds,
// sleeping backoff(attempt) between attempts. Any non-retryable error is
// returned immediately; the retryable error is returned unchanged once
// retries are exhausted.
func Do[T any](op func() (T, error), retries int, backoff Backoff, retryable Predicate) (T, error) {
	var (
		result T
		err    error
	)
	for attempt := 0; ; attempt++ {
		result, err = op()
		if err == nil || !retryable(err) || attempt >= retries {
			return result, err
		}
		time.Sleep(backoff(attempt))
	}
}

// WithConnRetry runs op with the default policy: two retries with linear
// whole-second backoff, retrying only connectivity failures.
func WithConnRetry[T any](op func() (T, error)) (T, error) {
	return Do(op, DefaultRetries, LinearBackoff, IsConnectivity)
}

// IsConnectivity reports whether err looks like a datastore connectivity
// failure expected to be self-resolving on retry.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"unexpected EOF",
		"conn closed",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
