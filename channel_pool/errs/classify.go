package errs

import (
	"context"
	"errors"
)

// FromAcquire sorts an error returned by a third-party pool's acquire call into
// the errors of this package. Errors that already are one pass through, an
// expired or cancelled wait means the pool had nothing to give, anything else
// is a failed connection.
func FromAcquire(err error) error {
	if err == nil {
		return nil
	}
	if IsClosedErr(err) || IsPoolExhaustedErr(err) || IsConnectionErr(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return WrapPoolExhaustedErr("no connection available", err)
	}
	return NewConnectionErr("open connection err", err)
}
