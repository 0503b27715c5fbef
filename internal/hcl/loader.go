package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/assetgate/internal/config"
	"github.com/specialistvlad/assetgate/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

type parsedFile struct {
	name string
	body hcl.Body
}

// Load parses every .hcl file under paths and merges them into one model.
// Non-empty fields of vars take precedence over the project block. When the
// project directory is still unknown it defaults to the working directory,
// and the build directory defaults to <project_dir>/.pio/build.
func (l *Loader) Load(ctx context.Context, vars config.Vars, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	files := make([]parsedFile, 0, len(hclFiles))
	for _, name := range hclFiles {
		f, diags := parser.ParseHCLFile(name)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
		}
		files = append(files, parsedFile{name: name, body: f.Body})
	}

	env := envObject()
	project, rest, err := l.loadProject(files, vars, env)
	if err != nil {
		return nil, err
	}
	logger.Debug("Project layout resolved.", "project_dir", project.ProjectDir, "build_dir", project.BuildDir)

	model := &config.Model{Project: *project}
	evalCtx := newEvalContext(env, map[string]string{
		"project_dir": project.ProjectDir,
		"build_dir":   project.BuildDir,
	})

	var compileFrom, notifyFrom string
	pipelineFrom := make(map[string]string)
	for _, f := range rest {
		var root fileRoot
		if diags := gohcl.DecodeBody(f.body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", f.name, diags)
		}

		for _, p := range root.Pipelines {
			if prev, dup := pipelineFrom[p.Name]; dup {
				return nil, fmt.Errorf("pipeline %q is defined in both %s and %s", p.Name, prev, f.name)
			}
			pipelineFrom[p.Name] = f.name
			model.Pipelines = append(model.Pipelines, translatePipeline(p))
		}
		if root.Compile != nil {
			if compileFrom != "" {
				return nil, fmt.Errorf("compile block is defined in both %s and %s", compileFrom, f.name)
			}
			compileFrom = f.name
			model.Compile = translateCompile(root.Compile)
		}
		if root.Notify != nil {
			if notifyFrom != "" {
				return nil, fmt.Errorf("notify block is defined in both %s and %s", notifyFrom, f.name)
			}
			notifyFrom = f.name
			n, err := translateNotify(root.Notify)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", f.name, err)
			}
			model.Notify = n
		}
	}

	logger.Debug("HCL loading complete.", "files", len(files), "pipelines", len(model.Pipelines), "compile", model.Compile != nil, "notify", model.Notify != nil)
	return model, nil
}

// loadProject evaluates the project block (at most one across all files)
// and returns the remaining bodies of every file.
func (l *Loader) loadProject(files []parsedFile, vars config.Vars, env cty.Value) (*config.Project, []parsedFile, error) {
	project := &config.Project{ProjectDir: vars.ProjectDir, BuildDir: vars.BuildDir}
	rest := make([]parsedFile, 0, len(files))
	var block *projectBlock
	var blockFrom string

	for _, f := range files {
		var root projectRoot
		if diags := gohcl.DecodeBody(f.body, nil, &root); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", f.name, diags)
		}
		if root.Project != nil {
			if block != nil {
				return nil, nil, fmt.Errorf("project block is defined in both %s and %s", blockFrom, f.name)
			}
			block, blockFrom = root.Project, f.name
		}
		rest = append(rest, parsedFile{name: f.name, body: root.Remain})
	}

	if block != nil {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("invalid project block in %s: %w", blockFrom, diags)
		}
		for name := range attrs {
			if name != "project_dir" && name != "build_dir" {
				return nil, nil, fmt.Errorf("unsupported argument %q in project block in %s", name, blockFrom)
			}
		}
		if attr, ok := attrs["project_dir"]; ok && project.ProjectDir == "" {
			v, err := evalString(attr.Expr, newEvalContext(env, nil))
			if err != nil {
				return nil, nil, fmt.Errorf("project_dir in %s: %w", blockFrom, err)
			}
			project.ProjectDir = v
		}
		if err := defaultProjectDir(project); err != nil {
			return nil, nil, err
		}
		if attr, ok := attrs["build_dir"]; ok && project.BuildDir == "" {
			v, err := evalString(attr.Expr, newEvalContext(env, map[string]string{"project_dir": project.ProjectDir}))
			if err != nil {
				return nil, nil, fmt.Errorf("build_dir in %s: %w", blockFrom, err)
			}
			project.BuildDir = v
		}
	}

	if err := defaultProjectDir(project); err != nil {
		return nil, nil, err
	}
	if project.BuildDir == "" {
		project.BuildDir = filepath.Join(project.ProjectDir, ".pio", "build")
	}
	return project, rest, nil
}

func defaultProjectDir(p *config.Project) error {
	if p.ProjectDir != "" {
		return nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}
	p.ProjectDir = wd
	return nil
}

func translatePipeline(p *pipelineBlock) *config.Pipeline {
	return &config.Pipeline{
		Name:    p.Name,
		Command: p.Command,
		Args:    p.Args,
		Dir:     p.Dir,
		Env:     p.Env,
		Targets: p.Targets,
	}
}

func translateCompile(c *compileBlock) *config.Compile {
	return &config.Compile{
		Target:  c.Target,
		Command: c.Command,
		Args:    c.Args,
		Dir:     c.Dir,
	}
}

func translateNotify(n *notifyBlock) (*config.Notify, error) {
	if n.Kind != "socketio" {
		return nil, fmt.Errorf("unsupported notify kind %q", n.Kind)
	}
	var timeout time.Duration
	if n.Timeout != "" {
		d, err := time.ParseDuration(n.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid notify timeout %q: %w", n.Timeout, err)
		}
		timeout = d
	}
	return &config.Notify{
		Kind:               n.Kind,
		URL:                n.URL,
		Namespace:          n.Namespace,
		Event:              n.Event,
		Timeout:            timeout,
		InsecureSkipVerify: n.InsecureSkipVerify,
	}, nil
}
