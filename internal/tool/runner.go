// Package tool runs the external static-site tool in dry-run mode against an
// emitted configuration, confirming the tool itself accepts it.
package tool

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// SkipEnv disables the dry run regardless of configuration when set to "1".
const SkipEnv = "SITECFG_SKIP_TOOL"

// Status is the outcome of a dry run.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result describes one dry run.
type Result struct {
	Status   Status
	Reason   string
	Duration time.Duration
	Output   string
}

// Runner invokes the external tool.
type Runner struct {
	command  []string
	enabled  bool
	timeout  time.Duration
	lookPath func(string) (string, error)
}

// NewRunner builds a Runner from the tool section of the configuration.
func NewRunner(cfg config.ToolConfig) (*Runner, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid tool.timeout").Build()
	}
	command := cfg.Command
	if len(command) == 0 {
		command = config.DefaultToolCommand()
	}
	return &Runner{
		command:  append([]string(nil), command...),
		enabled:  cfg.Enabled,
		timeout:  timeout,
		lookPath: exec.LookPath,
	}, nil
}

// Args returns the full argument vector used for configFile.
func (r *Runner) Args(configFile string) []string {
	args := append([]string(nil), r.command...)
	return append(args, "--config="+configFile, "--dryrun", "--quiet")
}

// skipReason returns why the run would be skipped, or "".
func (r *Runner) skipReason() string {
	if os.Getenv(SkipEnv) == "1" {
		return SkipEnv + "=1"
	}
	if !r.enabled {
		return "tool.enabled is false"
	}
	if _, err := r.lookPath(r.command[0]); err != nil {
		return fmt.Sprintf("%s not found in PATH", r.command[0])
	}
	return ""
}

// Check runs the tool inside root with configFile. A non-zero exit or a
// timeout is returned as an external error alongside a failed Result.
func (r *Runner) Check(ctx context.Context, root, configFile string) (Result, error) {
	if reason := r.skipReason(); reason != "" {
		slog.Debug("Skipping external tool dry run", slog.String("reason", reason))
		return Result{Status: StatusSkipped, Reason: reason}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := r.Args(configFile)
	// #nosec G204 -- command comes from the operator's configuration
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = root
	cmd.WaitDelay = time.Second
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	slog.Info("Running external tool dry run", logfields.Command(strings.Join(args, " ")), logfields.Root(root))
	start := time.Now()
	runErr := cmd.Run()
	res := Result{Status: StatusPassed, Duration: time.Since(start), Output: out.String()}
	if runErr == nil {
		slog.Debug("External tool accepted configuration", logfields.DurationMS(float64(res.Duration.Milliseconds())))
		return res, nil
	}

	res.Status = StatusFailed
	msg := "external tool rejected configuration"
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		msg = fmt.Sprintf("external tool timed out after %s", r.timeout)
	}
	res.Reason = msg
	return res, errors.ExternalError(msg).WithCause(runErr).
		WithContext("command", strings.Join(args, " ")).
		WithContext("output", tail(res.Output, 2048)).
		Build()
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
