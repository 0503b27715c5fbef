package app

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultConfigFile is looked up in the project directory when no
// configuration path is given.
const DefaultConfigFile = "assetgate.hcl"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // file or directory of .hcl files
	ProjectDir string
	BuildDir   string
	// Targets overrides the targets built in the cycle.
	Targets []string
	// HookOnly runs the pipelines without the compile step.
	HookOnly  bool
	NotifyURL string

	LogFormat string
	LogLevel  string
}

var (
	validLogFormats = []string{"text", "json", "pretty"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
)

// NewConfig validates cfg and returns a normalized copy.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !contains(validLogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be one of %s", cfg.LogFormat, strings.Join(validLogFormats, ", "))
	}
	if !contains(validLogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be one of %s", cfg.LogLevel, strings.Join(validLogLevels, ", "))
	}
	for _, t := range cfg.Targets {
		if strings.TrimSpace(t) == "" {
			return nil, errors.New("target must not be empty")
		}
	}
	return &cfg, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
