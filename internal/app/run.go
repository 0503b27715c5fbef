package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/assetgate/internal/buildenv"
	"github.com/specialistvlad/assetgate/internal/ctxlog"
)

// Run executes one build cycle. Every pipeline gating a target runs before
// that target is produced. When a compile step is configured and HookOnly is
// unset, the compile command produces its target once the pipelines have
// succeeded; otherwise only the pipelines run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	targets := a.targets()
	if len(targets) == 0 {
		a.logger.Warn("No targets to build, nothing to do.")
		return nil
	}

	var producer buildenv.Producer
	if a.model.Compile != nil && !a.cfg.HookOnly {
		producer = a.compile
	}

	a.logger.Info("🚀 Starting build cycle.", "targets", len(targets), "hook_only", producer == nil)
	if err := a.env.Build(ctx, producer, targets...); err != nil {
		a.logger.Error("Build cycle failed.", "error", err)
		return fmt.Errorf("build failed: %w", err)
	}
	a.logger.Info("🏁 Build cycle finished.")
	return nil
}

// targets returns the targets of this cycle: the CLI override if given,
// otherwise every pipeline target plus the compile target.
func (a *App) targets() []string {
	if len(a.cfg.Targets) > 0 {
		return a.cfg.Targets
	}
	targets := a.model.Targets()
	if a.model.Compile == nil || a.cfg.HookOnly {
		return targets
	}
	compileTarget := a.env.Subst(a.model.Compile.Target)
	for _, t := range targets {
		if a.env.Subst(t) == compileTarget {
			return targets
		}
	}
	return append(targets, a.model.Compile.Target)
}

// compile is the producer for the configured compile target. Other targets
// have no producer of their own here; the host build system makes them.
func (a *App) compile(ctx context.Context, target string) error {
	c := a.model.Compile
	if a.env.Subst(c.Target) != target {
		return nil
	}
	return a.env.Execute(ctx, buildenv.Command{
		Name: "compile",
		Path: c.Command,
		Args: c.Args,
		Dir:  c.Dir,
	})
}
