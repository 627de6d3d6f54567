package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// CurrentVersion is the only configuration schema version understood by this build.
const CurrentVersion = "1"

// DefaultPath is where the CLI looks for the configuration when none is given.
const DefaultPath = "sitecfg.yaml"

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	if err := applyDefaults(cfg); err != nil {
		panic(err) // defaults are static; a failure here is a programming error
	}
	return cfg
}

// Load reads, normalizes, defaults and validates a configuration file.
// Files ending in .json or .jsonc are parsed as JSON with comments; anything
// else is YAML. ${VAR} references are expanded after .env files are loaded.
func Load(configPath string) (*Config, error) {
	if loaded, err := loadEnvFiles(); err != nil {
		slog.Warn("Failed to load .env file", logfields.Error(err))
	} else if len(loaded) > 0 {
		slog.Debug("Loaded environment files", "files", loaded)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(filepath.Ext(configPath), []byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}

	res, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	for _, w := range res.Warnings {
		slog.Warn("config normalization", "warning", w, logfields.Path(configPath))
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes raw configuration bytes. ext selects the syntax (".json",
// ".jsonc" or YAML for anything else). Unknown keys are rejected.
func Parse(ext string, data []byte) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse JSON config").Build()
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse YAML config").Build()
		}
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.InternalError("failed to marshal example config").WithCause(err).Build()
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Example returns the configuration written by Init.
func Example() *Config {
	return &Config{
		Version: CurrentVersion,
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Emit: EmitConfig{
			Targets: []EmitTarget{
				{Format: EmitFormatJS, Path: ".eleventy.js"},
				{Format: EmitFormatJSON, Path: "sitecfg.lock.json"},
			},
			Manifest: ".sitecfg/manifest.json",
		},
		Metrics: MetricsConfig{Textfile: ""},
		Tool: ToolConfig{
			Enabled: false,
			Command: DefaultToolCommand(),
			Timeout: DefaultToolTimeout,
		},
	}
}
