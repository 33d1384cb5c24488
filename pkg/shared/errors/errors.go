package errors

// CommandError represents a failed command together with the process exit code it maps to.
type CommandError struct {
	ExitCode int
	Err      error
}

// Error implements the error interface, returning the message from the wrapped error.
func (e *CommandError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode: code,
		Err:      err,
	}
}
