package errs

import (
	"errors"
	"fmt"
)

/*
	A error type for a warmup that stopped because an acquisition failed

	Index is the 0-based acquisition that failed. ReleaseErrs holds the release
	failures met while returning the connections acquired before it.
*/
type WarmupFailedErr struct {
	Index       int
	Cause       error
	ReleaseErrs []ReleaseErr
}

func (e WarmupFailedErr) Error() string {
	msg := fmt.Sprintf("warmup failed at acquisition %d: %v", e.Index, e.Cause)
	if n := len(e.ReleaseErrs); n > 0 {
		msg += fmt.Sprintf(" (%d release errors during cleanup)", n)
	}
	return msg
}

func (e WarmupFailedErr) Unwrap() error {
	return e.Cause
}

func NewWarmupFailedErr(index int, cause error) WarmupFailedErr {
	return WarmupFailedErr{
		Index: index,
		Cause: cause,
	}
}

func IsWarmupFailedErr(e error) bool {
	var target WarmupFailedErr
	return errors.As(e, &target)
}

// WarmupFailedIndex returns the failed acquisition index carried by e.
func WarmupFailedIndex(e error) (int, bool) {
	var target WarmupFailedErr
	if !errors.As(e, &target) {
		return 0, false
	}
	return target.Index, true
}
