package config

import "fmt"

// DefaultToolTimeout bounds the external tool dry run.
const DefaultToolTimeout = "2m"

// DefaultToolCommand is the external build tool invocation used for dry runs.
func DefaultToolCommand() []string {
	return []string{"npx", "--no-install", "@11ty/eleventy"}
}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// LoggingDefaultApplier handles logging defaults.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	return nil
}

// EmitDefaultApplier defaults to emitting the external tool's config module.
type EmitDefaultApplier struct{}

func (EmitDefaultApplier) Domain() string { return "emit" }

func (EmitDefaultApplier) ApplyDefaults(cfg *Config) error {
	if len(cfg.Emit.Targets) == 0 {
		cfg.Emit.Targets = []EmitTarget{{Format: EmitFormatJS, Path: ".eleventy.js"}}
	}
	for i := range cfg.Emit.Targets {
		t := &cfg.Emit.Targets[i]
		if t.Path != "" {
			continue
		}
		switch t.Format {
		case EmitFormatJS:
			t.Path = ".eleventy.js"
		case EmitFormatJSON:
			t.Path = "sitecfg.lock.json"
		case EmitFormatYAML:
			t.Path = "sitecfg.lock.yaml"
		}
	}
	return nil
}

// ToolDefaultApplier fills in the dry run command and timeout.
type ToolDefaultApplier struct{}

func (ToolDefaultApplier) Domain() string { return "tool" }

func (ToolDefaultApplier) ApplyDefaults(cfg *Config) error {
	if len(cfg.Tool.Command) == 0 {
		cfg.Tool.Command = DefaultToolCommand()
	}
	if cfg.Tool.Timeout == "" {
		cfg.Tool.Timeout = DefaultToolTimeout
	}
	return nil
}

var defaultAppliers = []DefaultApplier{
	LoggingDefaultApplier{},
	EmitDefaultApplier{},
	ToolDefaultApplier{},
}

// applyDefaults applies default values to configuration
func applyDefaults(cfg *Config) error {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	for _, applier := range defaultAppliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}
