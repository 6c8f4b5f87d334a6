package output

import (
	"errors"
	"fmt"
	"io"
)

// Exit codes following sysexits.h convention
const (
	ExitOK           = 0  // Success
	ExitGeneral      = 1  // General error
	ExitUsage        = 2  // Invalid usage / bad arguments
	ExitNotFound     = 4  // Record not found
	ExitAPIError     = 9  // Service returned an error
	ExitConfigError  = 10 // Configuration error
	ExitNetworkError = 11 // Service unreachable
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode
	}
	return ExitGeneral
}

// PrintError writes err and its hint, if any, to w.
func PrintError(w io.Writer, err error) {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		fmt.Fprintf(w, "Error: %s\n", cliErr.Message)
		if cliErr.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", cliErr.Hint)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
