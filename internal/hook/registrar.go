package hook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/assetgate/internal/buildenv"
	"github.com/specialistvlad/assetgate/internal/ctxlog"
)

// Command is the external command a hook runs.
type Command = buildenv.Command

// DefaultCommand is the project-local gulp default task.
var DefaultCommand = Command{
	Name: "gulp",
	Path: "$" + buildenv.VarProjectDir + "/node_modules/.bin/gulp",
}

// Gated target identifiers used by the different toolchain revisions.
const (
	TargetMainObject    = "$" + buildenv.VarBuildDir + "/src/main.ino.o"
	TargetMainCPPObject = "$" + buildenv.VarBuildDir + "/src/main.ino.cpp.o"
)

// State is the registration state of a (target, command) pair.
type State int

const (
	Unregistered State = iota
	Registered
)

func (s State) String() string {
	if s == Registered {
		return "registered"
	}
	return "unregistered"
}

// Registrar attaches command hooks to an environment and remembers what it
// has registered. Not safe for concurrent use; registration happens once
// while the build script loads.
type Registrar struct {
	env        buildenv.Environment
	registered map[string]struct{}
	onSuccess  func(ctx context.Context, res Result)
	logger     *slog.Logger
}

// Result describes a successful hook run.
type Result struct {
	Command  Command
	Target   string
	Duration time.Duration
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithSuccessHook calls fn after every successful command run. fn runs on
// the build goroutine, before the gated target is produced.
func WithSuccessHook(fn func(ctx context.Context, res Result)) Option {
	return func(r *Registrar) {
		r.onSuccess = fn
	}
}

// WithLogger sets the logger used for registration messages. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registrar) {
		r.logger = logger
	}
}

// NewRegistrar creates a Registrar bound to env.
func NewRegistrar(env buildenv.Environment, opts ...Option) *Registrar {
	r := &Registrar{env: env, registered: make(map[string]struct{}), logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register runs cmd before target on a one-off registrar. See
// Registrar.Register.
func Register(env buildenv.Environment, target string, cmd Command) error {
	return NewRegistrar(env).Register(target, cmd)
}

// Register attaches cmd as a pre-action of target. Registering the same
// command for the same target again is a no-op. Registering the same command
// for several targets shares one action key, so it runs at most once per
// build cycle. The key covers every field of cmd, so commands that differ
// only in name or environment are separate pre-actions.
func (r *Registrar) Register(target string, cmd Command) error {
	if r.env == nil {
		return errors.New("hook: nil build environment")
	}
	if strings.TrimSpace(target) == "" {
		return errors.New("hook: empty target")
	}
	if strings.TrimSpace(cmd.Path) == "" {
		return errors.New("hook: empty command path")
	}

	key := commandKey(cmd)
	id := r.env.Subst(target) + "\x00" + key
	if _, ok := r.registered[id]; ok {
		return nil
	}
	if !r.env.AddPreAction(target, key, r.newAction(target, cmd)) {
		r.logger.Warn("Identical pre-build command already attached to target; keeping the existing one.",
			"hook", cmd.Name, "target", r.env.Subst(target))
	}
	r.registered[id] = struct{}{}
	return nil
}

// State reports whether cmd is registered for target.
func (r *Registrar) State(target string, cmd Command) State {
	if r.env == nil {
		return Unregistered
	}
	if _, ok := r.registered[r.env.Subst(target)+"\x00"+commandKey(cmd)]; ok {
		return Registered
	}
	return Unregistered
}

func (r *Registrar) newAction(target string, cmd Command) buildenv.Action {
	return func(ctx context.Context, env buildenv.Environment) error {
		resolved := env.Subst(target)
		logger := ctxlog.FromContext(ctx).With("hook", cmd.Name, "target", resolved)
		logger.Info("Running pre-build command.")

		start := time.Now()
		if err := env.Execute(ctx, cmd); err != nil {
			logger.Error("Pre-build command failed.", "error", err)
			return &CommandFailedError{Command: env.Subst(cmd.Path), Target: resolved, Err: err}
		}
		res := Result{Command: cmd, Target: resolved, Duration: time.Since(start)}
		logger.Debug("Pre-build command succeeded.", "duration", res.Duration)
		if r.onSuccess != nil {
			r.onSuccess(ctx, res)
		}
		return nil
	}
}

// commandKey identifies a command independently of the target it gates.
func commandKey(cmd Command) string {
	var b strings.Builder
	b.WriteString(cmd.Name)
	b.WriteByte(0)
	b.WriteString(cmd.Path)
	writeList(&b, "args", cmd.Args)
	b.WriteByte(0)
	b.WriteString(cmd.Dir)
	writeList(&b, "env", cmd.Env)
	return b.String()
}

// writeList appends a length-prefixed list so that element boundaries stay
// unambiguous.
func writeList(b *strings.Builder, tag string, items []string) {
	fmt.Fprintf(b, "\x00%s:%d", tag, len(items))
	for _, s := range items {
		b.WriteByte(0)
		b.WriteString(s)
	}
}
