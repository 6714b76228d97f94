package deployment

import (
	"fmt"
)

type ExitCode int

// Keep separate to avoid skewing exit codes
const (
	ExitSuccess ExitCode = iota
	ExitDeploymentFailure
	ExitNotFound
	ExitTimeout
	ExitConfigError
	ExitInvocationFailure
	ExitUnavailable
	ExitInternalError
)

// Error is the umbrella error returned from lifecycle operations. It carries
// a human-readable message and an exit code suitable for a CI process.
type Error struct {
	Code ExitCode
	Err  error
}

func (err *Error) Error() string {
	return err.Err.Error()
}

func (err *Error) Unwrap() error {
	return err.Err
}

func Errorf(exitCode ExitCode, format string, args ...interface{}) *Error {
	return &Error{
		Code: exitCode,
		Err:  fmt.Errorf(format, args...),
	}
}

func ErrorWrap(exitCode ExitCode, err error) *Error {
	return &Error{
		Code: exitCode,
		Err:  err,
	}
}

// ErrorExitCode maps any error returned from this package to a process exit
// code. For an InsertError the code derives from the original insert
// failure, never from the rollback failure.
func ErrorExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch e := err.(type) {
	case *Error:
		return e.Code
	case *InsertError:
		return ErrorExitCode(e.Err)
	case *ConfigReadError:
		return ExitConfigError
	}
	return ExitInternalError
}

// ConfigReadError reports that the main configuration or one of its imports
// could not be read. It is always raised before anything is submitted, so it
// never triggers a rollback.
type ConfigReadError struct {
	Path string
	Err  error
}

func (e *ConfigReadError) Error() string {
	return fmt.Sprintf("read %s: %s", e.Path, e.Err)
}

func (e *ConfigReadError) Unwrap() error {
	return e.Err
}

// InsertError reports a failed insertion together with the outcome of the
// automatic rollback. The insert failure is the primary error; a rollback
// failure is carried alongside so that neither is lost.
type InsertError struct {
	// Err is the failure that aborted the insertion.
	Err error
	// RollbackErr is non-nil when the compensating deletion also failed.
	RollbackErr error
}

func (e *InsertError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("%s (rollback also failed: %s)", e.Err, e.RollbackErr)
	}
	return e.Err.Error()
}

func (e *InsertError) Unwrap() error {
	return e.Err
}
