package procexec

import "fmt"

// ExitError reports a process that started but exited with a non-zero status.
// Code is -1 when the process was terminated by a signal.
type ExitError struct {
	Path string
	Code int
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s was terminated by a signal", e.Path)
	}
	return fmt.Sprintf("%s exited with status %d", e.Path, e.Code)
}

// SpawnError reports a process that could not be started, typically because
// the binary is missing or not executable.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
