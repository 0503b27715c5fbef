// Package hook registers pre-build actions that run an external command
// before a gated build artifact is produced.
//
// The registered action blocks until the command exits. A non-zero exit or a
// spawn failure is returned as a *CommandFailedError, which aborts the build
// cycle before the artifact is produced. There are no retries.
package hook
