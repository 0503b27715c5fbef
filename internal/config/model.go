package config

import "time"

// DefaultNotifyTimeout bounds a single notification.
const DefaultNotifyTimeout = 5 * time.Second

// Model is the unified, format-agnostic representation of the configuration.
type Model struct {
	Project   Project
	Pipelines []*Pipeline
	Compile   *Compile
	Notify    *Notify
}

// Project holds the two directories the build environment exposes.
type Project struct {
	ProjectDir string
	BuildDir   string
}

// Pipeline is an external asset command gated in front of one or more
// targets.
type Pipeline struct {
	Name    string
	Command string
	Args    []string
	Dir     string
	Env     map[string]string
	Targets []string
}

// Compile is the step that produces the gated target after the pipelines
// have succeeded.
type Compile struct {
	Target  string
	Command string
	Args    []string
	Dir     string
}

// Notify configures the post-pipeline notifier.
type Notify struct {
	Kind               string
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Targets returns every distinct target referenced by the pipelines, in
// declaration order.
func (m *Model) Targets() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range m.Pipelines {
		for _, t := range p.Targets {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
