package buildenv

import "fmt"

// BuildError aborts a build cycle. It names the target that could not be
// produced and wraps the cause.
type BuildError struct {
	Target string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build of %s failed: %v", e.Target, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
