// Package buildenv models the host build system as an explicit object.
//
// An Environment exposes the four primitives a build hook needs: variable
// lookup, variable substitution, a synchronous "run external command" and
// an "add pre-action for target" registration point. Local is the in-process
// implementation used by the CLI; tests can substitute their own.
//
// A build cycle (Local.Build) walks the requested targets in order. Before a
// target is produced, every pre-action attached to it runs on the caller's
// goroutine. The first failing pre-action aborts the cycle and the target's
// producer is never called.
package buildenv
