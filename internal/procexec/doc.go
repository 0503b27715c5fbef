// Package procexec runs one external process to completion on the calling
// goroutine. It streams the child's output into the context logger and
// classifies failures into spawn errors (the binary could not be started)
// and exit errors (the binary ran and returned a non-zero status).
//
// No timeout is applied. The only way to stop a running child is to cancel
// the context, which the CLI wires to SIGINT/SIGTERM.
package procexec
