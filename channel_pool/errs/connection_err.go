package errs

import "errors"

/*
	A error type for a failed connection establishment (dial, auth, handshake)
*/
type ConnectionErr struct {
	msg   string
	cause error
}

func (e ConnectionErr) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e ConnectionErr) Unwrap() error {
	return e.cause
}

func NewConnectionErr(msg string, cause error) ConnectionErr {
	return ConnectionErr{
		msg:   msg,
		cause: cause,
	}
}

func IsConnectionErr(e error) bool {
	var target ConnectionErr
	return errors.As(e, &target)
}
