package hook

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/assetgate/internal/procexec"
)

// ErrExternalCommandFailed matches every *CommandFailedError via errors.Is.
var ErrExternalCommandFailed = errors.New("external command failed")

// CommandFailedError reports a hook command that exited non-zero or could
// not be spawned.
type CommandFailedError struct {
	Command string
	Target  string
	Err     error
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("pre-build command %q for %s: %v", e.Command, e.Target, e.Err)
}

func (e *CommandFailedError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrExternalCommandFailed) hold.
func (e *CommandFailedError) Is(target error) bool {
	return target == ErrExternalCommandFailed
}

// ExitCode returns the command's exit status, or 0 when the command never
// ran to completion (spawn failure, signal).
func (e *CommandFailedError) ExitCode() int {
	var exitErr *procexec.ExitError
	if errors.As(e.Err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 0
}
