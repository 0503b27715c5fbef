package config

// Default pipeline values: the project-local gulp default task gating the
// main translation unit under both toolchain naming schemes.
const (
	DefaultPipelineName = "gulp"
	DefaultCommand      = "$PROJECT_DIR/node_modules/.bin/gulp"
	DefaultNotifyEvent  = "assetgate:built"
)

// DefaultTargets are the gated target identifiers used by the two toolchain
// revisions.
var DefaultTargets = []string{
	"$BUILD_DIR/src/main.ino.o",
	"$BUILD_DIR/src/main.ino.cpp.o",
}

// DefaultPipeline returns the pipeline used when none is configured.
func DefaultPipeline() *Pipeline {
	return &Pipeline{
		Name:    DefaultPipelineName,
		Command: DefaultCommand,
		Targets: append([]string(nil), DefaultTargets...),
	}
}

// ApplyDefaults fills unset fields of m in place.
func (m *Model) ApplyDefaults() {
	if len(m.Pipelines) == 0 {
		m.Pipelines = []*Pipeline{DefaultPipeline()}
	}
	for _, p := range m.Pipelines {
		if len(p.Targets) == 0 {
			p.Targets = append([]string(nil), DefaultTargets...)
		}
	}
	if m.Notify != nil {
		if m.Notify.Event == "" {
			m.Notify.Event = DefaultNotifyEvent
		}
		if m.Notify.Timeout <= 0 {
			m.Notify.Timeout = DefaultNotifyTimeout
		}
		if m.Notify.Kind == "" {
			m.Notify.Kind = "socketio"
		}
	}
}
