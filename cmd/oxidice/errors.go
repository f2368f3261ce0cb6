package main

import (
	"github.com/xuyisen-x/oxidice"
	"github.com/xuyisen-x/oxidice/internal/runtime"
)

// cliParseError, cliTypeError, and cliRuntimeError classify a failed
// oxidice.Validate/Evaluate call for exitCodeFor (spec.md §6's exit code
// contract: 2 for parse/type errors, 3 for runtime errors).
type cliParseError struct{ err error }

func (e *cliParseError) Error() string { return e.err.Error() }
func (e *cliParseError) Unwrap() error { return e.err }

type cliTypeError struct{ err error }

func (e *cliTypeError) Error() string { return e.err.Error() }
func (e *cliTypeError) Unwrap() error { return e.err }

type cliRuntimeError struct{ err error }

func (e *cliRuntimeError) Error() string { return e.err.Error() }
func (e *cliRuntimeError) Unwrap() error { return e.err }

// wrapError classifies err into the exit-code-bearing wrapper matching
// its concrete oxidice/runtime error type, or returns it unchanged for
// anything else (an Options validation failure, a flag/config error).
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *oxidice.ParseError:
		return &cliParseError{err}
	case *oxidice.TypeError:
		return &cliTypeError{err}
	case *runtime.DivisionByZeroError, *runtime.EmptyReductionError,
		*runtime.LimitExceededError, *runtime.InternalError:
		return &cliRuntimeError{err}
	default:
		return err
	}
}
