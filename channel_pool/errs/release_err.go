package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ReleaseErr is one connection that could not be put back, by acquisition index.
type ReleaseErr struct {
	Index int
	Cause error
}

func (e ReleaseErr) Error() string {
	return fmt.Sprintf("release connection %d: %v", e.Index, e.Cause)
}

func (e ReleaseErr) Unwrap() error {
	return e.Cause
}

func NewReleaseErr(index int, cause error) ReleaseErr {
	return ReleaseErr{
		Index: index,
		Cause: cause,
	}
}

/*
	A non-fatal error type reported after every acquired connection was
	handed back but some of the releases failed
*/
type ReleaseFailedErr struct {
	Errs []ReleaseErr
}

func (e ReleaseFailedErr) Error() string {
	parts := make([]string, 0, len(e.Errs))
	for _, r := range e.Errs {
		parts = append(parts, r.Error())
	}
	return fmt.Sprintf("%d release errors: %s", len(e.Errs), strings.Join(parts, "; "))
}

func (e ReleaseFailedErr) Unwrap() []error {
	out := make([]error, 0, len(e.Errs))
	for _, r := range e.Errs {
		out = append(out, r)
	}
	return out
}

func NewReleaseFailedErr(errs []ReleaseErr) ReleaseFailedErr {
	return ReleaseFailedErr{
		Errs: errs,
	}
}

func IsReleaseFailedErr(e error) bool {
	var target ReleaseFailedErr
	return errors.As(e, &target)
}
