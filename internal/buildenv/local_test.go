package buildenv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/assetgate/internal/procexec"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	specs []procexec.Spec
	err   error
}

func (r *recordingExecutor) Run(_ context.Context, spec procexec.Spec) (*procexec.Result, error) {
	r.specs = append(r.specs, spec)
	if r.err != nil {
		return nil, r.err
	}
	return &procexec.Result{Duration: time.Millisecond}, nil
}

func newTestEnv(exec Executor) *Local {
	return NewLocal(Options{
		Vars: map[string]string{
			VarProjectDir: "/work/light",
			VarBuildDir:   "/work/light/.pio/build/esp01",
		},
		Executor: exec,
	})
}

func TestLocal_Subst(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nil)

	testCases := []struct {
		in   string
		want string
	}{
		{"$PROJECT_DIR/node_modules/.bin/gulp", "/work/light/node_modules/.bin/gulp"},
		{"${BUILD_DIR}/src/main.ino.cpp.o", "/work/light/.pio/build/esp01/src/main.ino.cpp.o"},
		{"$UNKNOWN/x", "/x"},
		{"plain", "plain"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.want, env.Subst(tc.in), "input %q", tc.in)
	}

	v, ok := env.Var(VarProjectDir)
	require.True(t, ok)
	require.Equal(t, "/work/light", v)
	_, ok = env.Var("MISSING")
	require.False(t, ok)
}

func TestLocal_Execute(t *testing.T) {
	t.Parallel()

	t.Run("resolves variables before running", func(t *testing.T) {
		t.Parallel()
		exec := &recordingExecutor{}
		env := newTestEnv(exec)

		err := env.Execute(context.Background(), Command{
			Name: "gulp",
			Path: "$PROJECT_DIR/node_modules/.bin/gulp",
			Args: []string{"--dest", "${BUILD_DIR}/data"},
			Dir:  "$PROJECT_DIR",
		})

		require.NoError(t, err)
		want := []procexec.Spec{{
			Path: "/work/light/node_modules/.bin/gulp",
			Args: []string{"--dest", "/work/light/.pio/build/esp01/data"},
			Dir:  "/work/light",
		}}
		if diff := cmp.Diff(want, exec.specs); diff != "" {
			t.Errorf("executed specs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("propagates executor failure", func(t *testing.T) {
		t.Parallel()
		cause := &procexec.ExitError{Path: "gulp", Code: 1}
		env := newTestEnv(&recordingExecutor{err: cause})

		err := env.Execute(context.Background(), Command{Path: "gulp"})

		require.ErrorIs(t, err, cause)
	})
}

func TestLocal_Build(t *testing.T) {
	t.Parallel()
	const target = "$BUILD_DIR/src/main.ino.cpp.o"
	const resolved = "/work/light/.pio/build/esp01/src/main.ino.cpp.o"

	t.Run("pre-actions run in order before the producer", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(nil)
		var events []string
		record := func(name string) Action {
			return func(context.Context, Environment) error {
				events = append(events, name)
				return nil
			}
		}
		env.AddPreAction(target, "a", record("pre:a"))
		env.AddPreAction(resolved, "b", record("pre:b"))

		err := env.Build(context.Background(), func(_ context.Context, got string) error {
			events = append(events, "produce:"+got)
			return nil
		}, target)

		require.NoError(t, err)
		require.Equal(t, []string{"pre:a", "pre:b", "produce:" + resolved}, events)
	})

	t.Run("failing pre-action aborts before the producer", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(nil)
		cause := errors.New("assets failed")
		env.AddPreAction(target, "assets", func(context.Context, Environment) error { return cause })
		produced := false

		err := env.Build(context.Background(), func(context.Context, string) error {
			produced = true
			return nil
		}, target)

		require.ErrorIs(t, err, cause)
		var buildErr *BuildError
		require.ErrorAs(t, err, &buildErr)
		require.Equal(t, resolved, buildErr.Target)
		require.False(t, produced, "gated target must not be produced")
	})

	t.Run("duplicate key on a target is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(nil)
		noop := func(context.Context, Environment) error { return nil }

		require.True(t, env.AddPreAction(target, "assets", noop))
		require.False(t, env.AddPreAction(target, "assets", noop))
		require.False(t, env.AddPreAction(resolved, "assets", noop))
		require.Equal(t, 1, env.PreActionCount(target))
	})

	t.Run("shared key runs once per cycle across targets", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(nil)
		runs := 0
		action := func(context.Context, Environment) error {
			runs++
			return nil
		}
		env.AddPreAction("$BUILD_DIR/src/main.ino.o", "assets", action)
		env.AddPreAction("$BUILD_DIR/src/main.ino.cpp.o", "assets", action)

		require.NoError(t, env.Build(context.Background(), nil, "$BUILD_DIR/src/main.ino.o", "$BUILD_DIR/src/main.ino.cpp.o"))
		require.Equal(t, 1, runs)

		require.NoError(t, env.Build(context.Background(), nil, "$BUILD_DIR/src/main.ino.o"))
		require.Equal(t, 2, runs, "a new cycle runs the action again")
	})

	t.Run("producer failure is wrapped", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(nil)
		cause := errors.New("compiler crashed")

		err := env.Build(context.Background(), func(context.Context, string) error { return cause }, target)

		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Error(), "producing target")
	})
}
