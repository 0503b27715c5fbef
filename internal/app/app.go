package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/specialistvlad/assetgate/internal/buildenv"
	"github.com/specialistvlad/assetgate/internal/config"
	"github.com/specialistvlad/assetgate/internal/ctxlog"
	"github.com/specialistvlad/assetgate/internal/hook"
	"github.com/specialistvlad/assetgate/internal/notify"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger    *slog.Logger
	cfg       *Config
	model     *config.Model
	env       *buildenv.Local
	registrar *hook.Registrar
	notifier  notify.Notifier
}

// Option customizes an App. Used by tests to substitute collaborators.
type Option func(*options)

type options struct {
	executor buildenv.Executor
	notifier notify.Notifier
}

// WithExecutor replaces the process runner used by the build environment.
func WithExecutor(e buildenv.Executor) Option {
	return func(o *options) { o.executor = e }
}

// WithNotifier replaces the notifier built from configuration.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// NewApp loads the configuration, builds the environment and registers every
// pipeline as a pre-build hook on each of its targets.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(cfg.ProjectDir, DefaultConfigFile)
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	model, err := loader.Load(ctx, config.Vars{ProjectDir: cfg.ProjectDir, BuildDir: cfg.BuildDir}, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.NotifyURL != "" {
		if model.Notify == nil {
			model.Notify = &config.Notify{}
		}
		model.Notify.URL = cfg.NotifyURL
	}
	model.ApplyDefaults()
	logger.Debug("Configuration loaded.", "config_path", configPath, "pipelines", len(model.Pipelines))

	env := buildenv.NewLocal(buildenv.Options{
		Vars: map[string]string{
			buildenv.VarProjectDir: model.Project.ProjectDir,
			buildenv.VarBuildDir:   model.Project.BuildDir,
		},
		Executor: o.executor,
	})

	a := &App{
		logger: logger,
		cfg:    cfg,
		model:  model,
		env:    env,
	}

	a.notifier = o.notifier
	if a.notifier == nil {
		a.notifier = notify.Noop{}
		if model.Notify != nil {
			a.notifier = notify.NewSocketIO(*model.Notify)
		}
	}

	a.registrar = hook.NewRegistrar(env, hook.WithSuccessHook(a.notifySuccess), hook.WithLogger(logger))
	for _, p := range model.Pipelines {
		cmd := pipelineCommand(p)
		for _, target := range p.Targets {
			if err := a.registrar.Register(target, cmd); err != nil {
				return nil, fmt.Errorf("registering pipeline %q for %s: %w", p.Name, target, err)
			}
			logger.Debug("Pipeline registered.", "pipeline", p.Name, "target", env.Subst(target))
		}
	}

	return a, nil
}

// Model returns the loaded configuration model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// Environment returns the app's build environment. This is primarily for testing.
func (a *App) Environment() *buildenv.Local {
	return a.env
}

func (a *App) notifySuccess(ctx context.Context, res hook.Result) {
	ev := notify.Event{Pipeline: res.Command.Name, Target: res.Target, Duration: res.Duration}
	if err := a.notifier.Notify(ctx, ev); err != nil {
		ctxlog.FromContext(ctx).Warn("Notification failed; continuing build.", "pipeline", ev.Pipeline, "error", err)
	}
}

func pipelineCommand(p *config.Pipeline) hook.Command {
	cmd := hook.Command{
		Name: p.Name,
		Path: p.Command,
		Args: p.Args,
		Dir:  p.Dir,
	}
	if len(p.Env) > 0 {
		keys := make([]string, 0, len(p.Env))
		for k := range p.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Env = append(cmd.Env, k+"="+p.Env[k])
		}
	}
	return cmd
}
