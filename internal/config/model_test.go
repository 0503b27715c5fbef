package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestModel_ApplyDefaults(t *testing.T) {
	t.Parallel()

	t.Run("empty model gets the gulp pipeline", func(t *testing.T) {
		t.Parallel()
		m := &Model{}
		m.ApplyDefaults()

		want := []*Pipeline{{
			Name:    "gulp",
			Command: "$PROJECT_DIR/node_modules/.bin/gulp",
			Targets: []string{"$BUILD_DIR/src/main.ino.o", "$BUILD_DIR/src/main.ino.cpp.o"},
		}}
		if diff := cmp.Diff(want, m.Pipelines); diff != "" {
			t.Errorf("pipelines mismatch (-want +got):\n%s", diff)
		}
		require.Nil(t, m.Notify)
	})

	t.Run("notify gets event and timeout", func(t *testing.T) {
		t.Parallel()
		m := &Model{Notify: &Notify{URL: "http://localhost:3000"}}
		m.ApplyDefaults()

		require.Equal(t, DefaultNotifyEvent, m.Notify.Event)
		require.Equal(t, DefaultNotifyTimeout, m.Notify.Timeout)
		require.Equal(t, "socketio", m.Notify.Kind)
	})

	t.Run("default targets are not shared between pipelines", func(t *testing.T) {
		t.Parallel()
		m := &Model{Pipelines: []*Pipeline{{Name: "a"}, {Name: "b"}}}
		m.ApplyDefaults()

		m.Pipelines[0].Targets[0] = "changed"
		require.Equal(t, DefaultTargets[0], m.Pipelines[1].Targets[0])
	})
}

func TestModel_Targets(t *testing.T) {
	t.Parallel()
	m := &Model{Pipelines: []*Pipeline{
		{Targets: []string{"a", "b"}},
		{Targets: []string{"b", "c"}},
	}}
	require.Equal(t, []string{"a", "b", "c"}, m.Targets())
}
