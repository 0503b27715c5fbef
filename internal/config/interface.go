package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and translates it into
	// the format-agnostic model. Paths that do not exist are skipped.
	Load(ctx context.Context, vars Vars, paths ...string) (*Model, error)
}

// Vars are the values made available to configuration templates.
type Vars struct {
	ProjectDir string
	BuildDir   string
}
