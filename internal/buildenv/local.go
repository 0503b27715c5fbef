package buildenv

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/assetgate/internal/ctxlog"
	"github.com/specialistvlad/assetgate/internal/procexec"
)

// Executor runs a resolved process spec. *procexec.Runner satisfies it.
type Executor interface {
	Run(ctx context.Context, spec procexec.Spec) (*procexec.Result, error)
}

// Producer builds a single target once its pre-actions have succeeded.
type Producer func(ctx context.Context, target string) error

// Options configures a Local environment.
type Options struct {
	Vars     map[string]string
	Executor Executor
	// Stdout and Stderr receive a raw copy of executed commands' output.
	Stdout io.Writer
	Stderr io.Writer
}

type preAction struct {
	key    string
	action Action
}

// Local is an in-process Environment.
type Local struct {
	vars     map[string]string
	executor Executor
	stdout   io.Writer
	stderr   io.Writer
	pre      map[string][]preAction
}

var _ Environment = (*Local)(nil)

// NewLocal creates a Local environment. A nil Executor defaults to
// procexec.New().
func NewLocal(opts Options) *Local {
	vars := make(map[string]string, len(opts.Vars))
	for k, v := range opts.Vars {
		vars[k] = v
	}
	executor := opts.Executor
	if executor == nil {
		executor = procexec.New()
	}
	return &Local{
		vars:     vars,
		executor: executor,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		pre:      make(map[string][]preAction),
	}
}

// Var implements Environment.
func (e *Local) Var(name string) (string, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Subst implements Environment.
func (e *Local) Subst(s string) string {
	return os.Expand(s, func(name string) string {
		return e.vars[name]
	})
}

// Execute implements Environment.
func (e *Local) Execute(ctx context.Context, cmd Command) error {
	spec := procexec.Spec{
		Path:   e.Subst(cmd.Path),
		Args:   e.substAll(cmd.Args),
		Dir:    e.Subst(cmd.Dir),
		Env:    e.substAll(cmd.Env),
		Stdout: e.stdout,
		Stderr: e.stderr,
	}
	logger := ctxlog.FromContext(ctx).With("name", cmd.Name)
	logger.Info("Running external command.", "path", spec.Path, "args", spec.Args)

	res, err := e.executor.Run(ctx, spec)
	if err != nil {
		return err
	}
	logger.Info("External command finished.", "duration", res.Duration)
	return nil
}

// AddPreAction implements Environment. The target is substituted before it
// is stored, so "$BUILD_DIR/src/main.ino.o" and its expanded form name the
// same target.
func (e *Local) AddPreAction(target, key string, action Action) bool {
	resolved := e.Subst(target)
	for _, pa := range e.pre[resolved] {
		if pa.key == key {
			return false
		}
	}
	e.pre[resolved] = append(e.pre[resolved], preAction{key: key, action: action})
	return true
}

// PreActionCount returns how many pre-actions are attached to target.
func (e *Local) PreActionCount(target string) int {
	return len(e.pre[e.Subst(target)])
}

// Build runs one build cycle over targets. Each target's pre-actions run in
// registration order before producer is called for it; an action attached
// to several targets under the same key runs once per cycle. A nil producer
// runs the pre-actions only.
func (e *Local) Build(ctx context.Context, producer Producer, targets ...string) error {
	logger := ctxlog.FromContext(ctx)
	ran := make(map[string]struct{})

	for _, target := range targets {
		resolved := e.Subst(target)
		logger.Debug("Building target.", "target", resolved, "pre_actions", len(e.pre[resolved]))

		for _, pa := range e.pre[resolved] {
			if _, done := ran[pa.key]; done {
				logger.Debug("Pre-action already ran this cycle.", "target", resolved, "key", pa.key)
				continue
			}
			ran[pa.key] = struct{}{}
			if err := pa.action(ctx, e); err != nil {
				return &BuildError{Target: resolved, Err: err}
			}
		}

		if producer == nil {
			continue
		}
		if err := producer(ctx, resolved); err != nil {
			return &BuildError{Target: resolved, Err: fmt.Errorf("producing target: %w", err)}
		}
	}
	return nil
}

func (e *Local) substAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = e.Subst(s)
	}
	return out
}
