package errorbank

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
)

// FromStorage classifies a storage failure: connection-class causes (pool
// unreachable, dead connection, acquisition timeout) become KindConnection,
// everything else keeps the statement-level kind supplied by the caller.
func FromStorage(err error, kind Kind, message string) *AppError {
	if err == nil {
		return nil
	}
	if isConnectionErr(err) {
		return Connection(message, WithCause(err))
	}
	return New(kind, message, WithCause(err))
}

func isConnectionErr(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
