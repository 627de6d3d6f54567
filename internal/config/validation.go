package config

import (
	"fmt"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// ValidateConfig validates the tool configuration, including the site overlay.
func ValidateConfig(cfg *Config) error {
	if cfg.Version != CurrentVersion {
		return errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).
			WithContext("field", "version").
			Build()
	}

	seen := make(map[string]int, len(cfg.Emit.Targets))
	for i, t := range cfg.Emit.Targets {
		if NormalizeEmitFormat(string(t.Format)) == "" {
			return errors.ConfigError(fmt.Sprintf("emit.targets[%d]: unsupported format %q (valid: %v)", i, t.Format, EmitFormats())).
				WithContext("field", "emit.targets").
				Build()
		}
		if t.Path == "" {
			return errors.ConfigError(fmt.Sprintf("emit.targets[%d]: path must not be empty", i)).Build()
		}
		clean := filepath.Clean(t.Path)
		if prev, dup := seen[clean]; dup {
			return errors.ConfigError(fmt.Sprintf("emit.targets[%d]: path %q already used by emit.targets[%d]", i, t.Path, prev)).Build()
		}
		seen[clean] = i
	}

	if cfg.Emit.Manifest != "" {
		if _, dup := seen[filepath.Clean(cfg.Emit.Manifest)]; dup {
			return errors.ConfigError(fmt.Sprintf("emit.manifest %q collides with an emit target", cfg.Emit.Manifest)).Build()
		}
	}

	if _, err := cfg.Tool.TimeoutDuration(); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid tool.timeout").Fatal().Build()
	}

	if _, err := cfg.BuildConfiguration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout, defaulting to DefaultToolTimeout.
func (t ToolConfig) TimeoutDuration() (time.Duration, error) {
	raw := t.Timeout
	if raw == "" {
		raw = DefaultToolTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", raw)
	}
	return d, nil
}
