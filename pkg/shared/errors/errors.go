package errors

import (
	"errors"
)

// Process exit codes returned by the CLI.
const (
	ExitGeneric     = 1
	ExitInvalidArgs = 2
	ExitScanner     = 3
)

// CommandError is a command failure carrying the exit code the process should end with.
type CommandError struct {
	ExitCode    int
	CommonError string
	Args        interface{}
	err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.err
}

// NewCommandError creates a new CommandError for the given command options and error.
func NewCommandError(args interface{}, err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Args:        args,
		err:         err,
	}
}

// ExitCode returns the exit code for err: 0 for nil, the CommandError code when err wraps one,
// ExitGeneric otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode != 0 {
		return cmdErr.ExitCode
	}
	return ExitGeneric
}
