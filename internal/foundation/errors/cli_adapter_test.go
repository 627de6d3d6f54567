package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad engine").Build(), expected: 2},
		{name: "not found", err: NotFoundError("no config").Build(), expected: 3},
		{name: "config", err: ConfigError("bad yaml").Build(), expected: 7},
		{name: "external tool", err: ExternalError("dry run failed").Build(), expected: 8},
		{name: "emit", err: EmitError("write failed").Build(), expected: 11},
		{name: "wrapped config", err: fmt.Errorf("load: %w", ConfigError("x").Build()), expected: 7},
		{name: "unclassified", err: errors.New("boom"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)

	err := ValidationError("unsupported engine").Build()
	if got := quiet.FormatError(err); got != "Error: unsupported engine" {
		t.Errorf("quiet FormatError() = %q", got)
	}
	if got := verbose.FormatError(err); got != "[validation:fatal] unsupported engine" {
		t.Errorf("verbose FormatError() = %q", got)
	}
	if got := quiet.FormatError(InternalError("nil pointer").Build()); got != "Internal error occurred (use -v for details)" {
		t.Errorf("internal FormatError() = %q", got)
	}
	if got := quiet.FormatError(errors.New("plain")); got != "Error: plain" {
		t.Errorf("plain FormatError() = %q", got)
	}
	if got := quiet.FormatError(nil); got != "" {
		t.Errorf("nil FormatError() = %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	exitCode := -1
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	adapter.out = &out
	adapter.exit = func(code int) { exitCode = code }

	adapter.HandleError(ConfigError("overlay rejected").Build())

	if exitCode != 7 {
		t.Errorf("expected exit code 7, got %d", exitCode)
	}
	if out.String() != "Error: overlay rejected\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	exitCode = -1
	adapter.HandleError(nil)
	if exitCode != -1 {
		t.Error("expected nil error to not exit")
	}
}
