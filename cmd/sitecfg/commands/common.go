package commands

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	"git.home.luguber.info/inful/sitecfg/internal/projectroot"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
)

// LogLevelEnv overrides the configured log level unless --verbose is given.
const LogLevelEnv = "SITECFG_LOG_LEVEL"

// Global is shared state handed to every subcommand.
type Global struct {
	Ctx context.Context
	Out io.Writer
}

func (g *Global) context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitecfg.yaml" env:"SITECFG_CONFIG"`
	Root    string           `short:"r" help:"Project root (default: project.root, else the enclosing git work tree, else the working directory)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Show     ShowCmd     `cmd:"" help:"Print the build configuration"`
	Validate ValidateCmd `cmd:"" help:"Validate the build configuration"`
	Check    CheckCmd    `cmd:"" help:"Check the project tree against the build configuration"`
	Plan     PlanCmd     `cmd:"" help:"List the files passthrough rules will copy"`
	Emit     EmitCmd     `cmd:"" help:"Write configured artifacts, manifest and metrics"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if l := config.NormalizeLogLevel(os.Getenv(LogLevelEnv)); l != "" {
		level = l.SlogLevel()
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	setupLogging(level, config.LogFormatText)
	return nil
}

func setupLogging(level slog.Level, format config.LogFormat) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if format == config.LogFormatJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// session is everything a subcommand needs after configuration is resolved.
type session struct {
	cfg     *config.Config
	build   siteconfig.BuildConfiguration
	root    string
	cfgPath string
}

// loadConfig reads the configuration file. A missing file at the default
// path is not an error: the built-in configuration applies.
func (c *CLI) loadConfig() (*config.Config, string, error) {
	cfg, err := config.Load(c.Config)
	if err == nil {
		c.applyLogging(cfg)
		return cfg, c.Config, nil
	}
	if c.Config == config.DefaultPath && errors.HasCategory(err, errors.CategoryNotFound) {
		if _, statErr := os.Stat(c.Config); stderrors.Is(statErr, fs.ErrNotExist) {
			slog.Debug("No configuration file, using built-in configuration", logfields.Path(c.Config))
			return config.Default(), "", nil
		}
	}
	return nil, "", err
}

// applyLogging honours logging.* from the file. --verbose and the
// environment override the level.
func (c *CLI) applyLogging(cfg *config.Config) {
	level := cfg.Logging.Level.SlogLevel()
	if l := config.NormalizeLogLevel(os.Getenv(LogLevelEnv)); l != "" {
		level = l.SlogLevel()
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	setupLogging(level, cfg.Logging.Format)
}

// open loads configuration, resolves the project root and derives the
// validated build configuration.
func (c *CLI) open() (*session, error) {
	cfg, cfgPath, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return c.newSession(cfg, cfgPath, metrics.NoopRecorder{})
}

func (c *CLI) newSession(cfg *config.Config, cfgPath string, rec metrics.Recorder) (*session, error) {
	build, err := cfg.BuildConfiguration()
	if err != nil {
		rec.IncValidation(metrics.ResultFailed)
		return nil, err
	}
	rec.IncValidation(metrics.ResultSuccess)
	root, err := c.resolveRoot(cfg, cfgPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("Resolved project", logfields.Root(root), logfields.Snapshot(build.Snapshot()))
	return &session{cfg: cfg, build: build, root: root, cfgPath: cfgPath}, nil
}

// resolveRoot applies --root, then project.root (relative to the config
// file), then auto-detection from the working directory.
func (c *CLI) resolveRoot(cfg *config.Config, cfgPath string) (string, error) {
	explicit := c.Root
	if explicit == "" && cfg.Project.Root != "" {
		explicit = cfg.Project.Root
		if !filepath.IsAbs(explicit) && cfgPath != "" {
			explicit = filepath.Join(filepath.Dir(cfgPath), explicit)
		}
	}
	root, err := projectroot.Resolve(explicit, ".")
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "cannot resolve project root").Build()
	}
	return root, nil
}

// inRoot resolves p against the project root unless it is absolute.
func (s *session) inRoot(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.root, filepath.FromSlash(p))
}
