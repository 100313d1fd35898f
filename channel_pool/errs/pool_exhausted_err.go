package errs

import "errors"

/*
	A error type for an acquire that could not obtain a connection
	because the capacity is already reserved by others
*/
type PoolExhaustedErr struct {
	msg   string
	cause error
}

func (e PoolExhaustedErr) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e PoolExhaustedErr) Unwrap() error {
	return e.cause
}

func NewPoolExhaustedErr(cause string) PoolExhaustedErr {
	return PoolExhaustedErr{
		msg: cause,
	}
}

// WrapPoolExhaustedErr keeps the underlying pool error reachable through errors.Is/As.
func WrapPoolExhaustedErr(msg string, cause error) PoolExhaustedErr {
	return PoolExhaustedErr{
		msg:   msg,
		cause: cause,
	}
}

// IsPoolExhaustedErr also reports the channel pool's own limit errors as exhausted.
func IsPoolExhaustedErr(e error) bool {
	var target PoolExhaustedErr
	if errors.As(e, &target) {
		return true
	}
	return IsMaxActiveConnectionErr(e) || IsWaitConnectionTimeoutErr(e)
}
