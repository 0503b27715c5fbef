package buildenv

import "context"

// Well-known variable names.
const (
	VarProjectDir = "PROJECT_DIR"
	VarBuildDir   = "BUILD_DIR"
)

// Command describes an external command. Path, Args, Dir and Env may contain
// $VAR or ${VAR} references that the environment resolves at execution time.
type Command struct {
	// Name is used for logging only.
	Name string
	Path string
	Args []string
	Dir  string
	Env  []string
}

// Action is a callback attached to a target.
type Action func(ctx context.Context, env Environment) error

// Environment is the build system's context object.
type Environment interface {
	// Var returns the raw value of a build variable.
	Var(name string) (string, bool)
	// Subst expands $NAME and ${NAME} references. Unknown names expand to "".
	Subst(s string) string
	// Execute runs cmd synchronously and returns a non-nil error unless it
	// exited with status 0.
	Execute(ctx context.Context, cmd Command) error
	// AddPreAction attaches action to target under key. It reports false and
	// leaves the existing action in place when key is already attached to
	// the same target.
	AddPreAction(target, key string, action Action) bool
}
