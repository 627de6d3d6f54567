package config

import (
	"log/slog"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, "")

// NormalizeLogLevel returns the canonical level, or "" when unknown.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// SlogLevel maps the level onto slog; unknown levels map to info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, "")

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// EmitFormat enumerates the rendered forms of the build configuration.
type EmitFormat string

const (
	EmitFormatJS   EmitFormat = "js"
	EmitFormatJSON EmitFormat = "json"
	EmitFormatYAML EmitFormat = "yaml"
)

var emitFormatNormalizer = normalization.NewNormalizer(map[string]EmitFormat{
	"js":         EmitFormatJS,
	"javascript": EmitFormatJS,
	"json":       EmitFormatJSON,
	"yaml":       EmitFormatYAML,
	"yml":        EmitFormatYAML,
}, "")

// NormalizeEmitFormat returns the canonical format, or "" when unknown.
func NormalizeEmitFormat(raw string) EmitFormat {
	return emitFormatNormalizer.Normalize(raw)
}

// EmitFormats lists valid emit format names for help output.
func EmitFormats() []string {
	return emitFormatNormalizer.ValidKeys()
}
