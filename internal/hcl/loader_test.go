package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/assetgate/internal/config"
	"github.com/specialistvlad/assetgate/internal/testutil"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, vars config.Vars, files map[string]string) (*config.Model, error) {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, files)
	return NewLoader().Load(context.Background(), vars, dir)
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("full gate file", func(t *testing.T) {
		t.Parallel()
		model, err := load(t, config.Vars{ProjectDir: "/work/light"}, map[string]string{
			"assetgate.hcl": `
project {
  build_dir = "${project_dir}/.pio/build/esp01"
}

pipeline "gulp" {
  command = "${project_dir}/node_modules/.bin/gulp"
  args    = ["build"]
  env     = { NODE_ENV = "production" }
  targets = ["$BUILD_DIR/src/main.ino.cpp.o"]
}

compile {
  target  = "${build_dir}/src/main.ino.cpp.o"
  command = "pio"
  args    = ["run", "-e", "esp01"]
}

notify "socketio" {
  url     = "http://localhost:3000/browser-sync/socket.io"
  event   = "browser:reload"
  timeout = "2s"
}
`,
		})
		require.NoError(t, err)

		want := &config.Model{
			Project: config.Project{ProjectDir: "/work/light", BuildDir: "/work/light/.pio/build/esp01"},
			Pipelines: []*config.Pipeline{{
				Name:    "gulp",
				Command: "/work/light/node_modules/.bin/gulp",
				Args:    []string{"build"},
				Env:     map[string]string{"NODE_ENV": "production"},
				Targets: []string{"$BUILD_DIR/src/main.ino.cpp.o"},
			}},
			Compile: &config.Compile{
				Target:  "/work/light/.pio/build/esp01/src/main.ino.cpp.o",
				Command: "pio",
				Args:    []string{"run", "-e", "esp01"},
			},
			Notify: &config.Notify{
				Kind:    "socketio",
				URL:     "http://localhost:3000/browser-sync/socket.io",
				Event:   "browser:reload",
				Timeout: 2 * time.Second,
			},
		}
		if diff := cmp.Diff(want, model); diff != "" {
			t.Errorf("model mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("vars override the project block", func(t *testing.T) {
		t.Parallel()
		model, err := load(t, config.Vars{ProjectDir: "/a", BuildDir: "/b"}, map[string]string{
			"gate.hcl": `
project {
  project_dir = "/ignored"
  build_dir   = "/ignored/build"
}
`,
		})
		require.NoError(t, err)
		require.Equal(t, config.Project{ProjectDir: "/a", BuildDir: "/b"}, model.Project)
	})

	t.Run("build dir defaults under the project", func(t *testing.T) {
		t.Parallel()
		model, err := load(t, config.Vars{ProjectDir: "/work/light"}, map[string]string{})
		require.NoError(t, err)
		require.Equal(t, filepath.Join("/work/light", ".pio", "build"), model.Project.BuildDir)
		require.Empty(t, model.Pipelines)
	})

	t.Run("pipelines merge across files", func(t *testing.T) {
		t.Parallel()
		model, err := load(t, config.Vars{ProjectDir: "/p"}, map[string]string{
			"a.hcl":                  `pipeline "css" { command = "css" }`,
			"nested/b.hcl":           `pipeline "js" { command = "js" }`,
			"node_modules/pkg/c.hcl": `pipeline "vendored" { command = "x" }`,
		})
		require.NoError(t, err)
		var names []string
		for _, p := range model.Pipelines {
			names = append(names, p.Name)
		}
		require.Equal(t, []string{"css", "js"}, names)
	})
}

func TestLoader_LoadEnvObject(t *testing.T) {
	t.Setenv("ASSETGATE_TEST_TOOL", "/opt/gulp")
	model, err := load(t, config.Vars{ProjectDir: "/p"}, map[string]string{
		"gate.hcl": `pipeline "gulp" { command = env.ASSETGATE_TEST_TOOL }`,
	})
	require.NoError(t, err)
	require.Equal(t, "/opt/gulp", model.Pipelines[0].Command)
}

func TestLoader_LoadErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		files    map[string]string
		errorMsg string
	}{
		{
			name:     "syntax error",
			files:    map[string]string{"a.hcl": `pipeline "gulp" {`},
			errorMsg: "failed to parse HCL file",
		},
		{
			name:     "missing command",
			files:    map[string]string{"a.hcl": `pipeline "gulp" {}`},
			errorMsg: "failed to decode HCL file",
		},
		{
			name: "duplicate pipeline",
			files: map[string]string{
				"a.hcl": `pipeline "gulp" { command = "a" }`,
				"b.hcl": `pipeline "gulp" { command = "b" }`,
			},
			errorMsg: `pipeline "gulp" is defined in both`,
		},
		{
			name: "duplicate project",
			files: map[string]string{
				"a.hcl": `project {}`,
				"b.hcl": `project {}`,
			},
			errorMsg: "project block is defined in both",
		},
		{
			name:     "unknown project argument",
			files:    map[string]string{"a.hcl": `project { output = "x" }`},
			errorMsg: `unsupported argument "output"`,
		},
		{
			name:     "unknown notify kind",
			files:    map[string]string{"a.hcl": `notify "websocket" { url = "ws://x" }`},
			errorMsg: `unsupported notify kind "websocket"`,
		},
		{
			name:     "bad notify timeout",
			files:    map[string]string{"a.hcl": "notify \"socketio\" {\n  url = \"http://x\"\n  timeout = \"soon\"\n}\n"},
			errorMsg: "invalid notify timeout",
		},
		{
			name:     "unknown variable",
			files:    map[string]string{"a.hcl": `pipeline "gulp" { command = "${nope}/gulp" }`},
			errorMsg: "failed to decode HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := load(t, config.Vars{ProjectDir: "/p"}, tc.files)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errorMsg)
		})
	}
}

func TestFindAllHCLFiles_SkipsMissingPaths(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := filepath.Join(dir, "gate.hcl")
	require.NoError(t, os.WriteFile(file, []byte(""), 0644))

	files, err := findAllHCLFiles([]string{filepath.Join(dir, "missing"), file, dir})
	require.NoError(t, err)
	require.Equal(t, []string{file}, files)
}
