// Package envconfig reads assetgate settings from environment variables.
// PROJECT_DIR and BUILD_DIR match the names the host build system exports,
// so the binary picks them up when it is launched from a build script.
package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are the environment-provided overrides. Empty fields are unset.
type Settings struct {
	ProjectDir string `env:"PROJECT_DIR"`
	BuildDir   string `env:"BUILD_DIR"`
	ConfigPath string `env:"ASSETGATE_CONFIG"`
	LogLevel   string `env:"ASSETGATE_LOG_LEVEL"`
	LogFormat  string `env:"ASSETGATE_LOG_FORMAT"`
	NotifyURL  string `env:"ASSETGATE_NOTIFY_URL"`
}

// Parse loads Settings from the process environment.
func Parse() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// ParseFrom loads Settings from the given environment instead of the
// process environment.
func ParseFrom(environ map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
