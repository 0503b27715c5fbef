package procexec

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/specialistvlad/assetgate/internal/ctxlog"
)

// Spec describes one process invocation.
type Spec struct {
	Path string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env entries are appended to the parent environment.
	Env []string
	// Stdout and Stderr optionally receive a raw copy of the child's output
	// in addition to the logger.
	Stdout io.Writer
	Stderr io.Writer
}

// Result describes a process that ran to completion.
type Result struct {
	ExitCode int
	Duration time.Duration
}

// Runner starts processes and waits for them.
type Runner struct{}

// New creates a Runner.
func New() *Runner {
	return &Runner{}
}

// Run starts the process described by spec and blocks until it exits. A nil
// error means the process exited with status 0. Otherwise the error is a
// *SpawnError or an *ExitError; the Result is returned whenever the process
// actually ran.
func (r *Runner) Run(ctx context.Context, spec Spec) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("command", spec.Path)

	if spec.Path == "" {
		return nil, &SpawnError{Path: spec.Path, Err: errors.New("empty command path")}
	}

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.Env...)

	stdout := newLineWriter(logger, "stdout")
	stderr := newLineWriter(logger, "stderr")
	cmd.Stdout = withSink(stdout, spec.Stdout)
	cmd.Stderr = withSink(stderr, spec.Stderr)

	logger.Debug("Starting process.", "args", spec.Args, "dir", spec.Dir)
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Path: spec.Path, Err: err}
	}

	err := cmd.Wait()
	stdout.flush()
	stderr.flush()
	res := &Result{ExitCode: cmd.ProcessState.ExitCode(), Duration: time.Since(start)}
	logger.Debug("Process exited.", "exit_code", res.ExitCode, "duration", res.Duration)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, &ExitError{Path: spec.Path, Code: exitErr.ExitCode()}
		}
		return res, &SpawnError{Path: spec.Path, Err: err}
	}
	return res, nil
}

func withSink(w io.Writer, sink io.Writer) io.Writer {
	if sink == nil {
		return w
	}
	return io.MultiWriter(w, sink)
}
