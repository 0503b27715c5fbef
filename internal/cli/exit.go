package cli

import (
	"errors"

	"github.com/specialistvlad/assetgate/internal/hook"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode maps an error returned by the application to a process exit code.
// A failing pipeline passes its own exit status through so the host build
// reports the same failure; everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var failed *hook.CommandFailedError
	if errors.As(err, &failed) {
		if code := failed.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
