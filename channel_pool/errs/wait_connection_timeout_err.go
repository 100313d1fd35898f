package errs

import "errors"

/*
	A error type for waiting too long on a pool that reached its max connection limit
*/
type WaitConnectionTimeoutErr struct {
	msg string
}

func (e WaitConnectionTimeoutErr) Error() string {
	return e.msg
}

func NewWaitConnectionTimeoutErr(cause string) WaitConnectionTimeoutErr {
	return WaitConnectionTimeoutErr{
		msg: cause,
	}
}

func IsWaitConnectionTimeoutErr(e error) bool {
	var target WaitConnectionTimeoutErr
	return errors.As(e, &target)
}
