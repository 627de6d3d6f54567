package config

// Config is the sitecfg tool configuration (sitecfg.yaml).
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Project ProjectConfig `yaml:"project" json:"project"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Emit    EmitConfig    `yaml:"emit" json:"emit"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Tool    ToolConfig    `yaml:"tool" json:"tool"`
	// Site optionally replaces individual values of the built-in build configuration.
	Site *SiteOverlay `yaml:"site,omitempty" json:"site,omitempty"`
}

// ProjectConfig locates the project the build configuration applies to.
type ProjectConfig struct {
	// Root is the project root. Empty means auto-detect (enclosing git work tree, else cwd).
	Root string `yaml:"root,omitempty" json:"root,omitempty"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level" json:"level"`
	Format LogFormat `yaml:"format" json:"format"`
}

// EmitConfig lists the artifacts written by `sitecfg emit`.
type EmitConfig struct {
	Targets  []EmitTarget `yaml:"targets" json:"targets"`
	Manifest string       `yaml:"manifest,omitempty" json:"manifest,omitempty"`
}

// EmitTarget is one rendered form of the build configuration.
type EmitTarget struct {
	Format EmitFormat `yaml:"format" json:"format"`
	Path   string     `yaml:"path" json:"path"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty" json:"textfile,omitempty"`
}

// ToolConfig controls the external build tool dry run.
type ToolConfig struct {
	Enabled bool     `yaml:"enabled" json:"enabled"`
	Command []string `yaml:"command,omitempty" json:"command,omitempty"`
	Timeout string   `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// SiteOverlay carries optional replacements for the built-in build configuration.
// Unset fields keep their built-in value.
type SiteOverlay struct {
	PassthroughPaths []string `yaml:"passthroughPaths,omitempty" json:"passthroughPaths,omitempty"`
	InputDir         string   `yaml:"inputDir,omitempty" json:"inputDir,omitempty"`
	IncludesDir      string   `yaml:"includesDir,omitempty" json:"includesDir,omitempty"`
	DataDir          string   `yaml:"dataDir,omitempty" json:"dataDir,omitempty"`
	OutputDir        string   `yaml:"outputDir,omitempty" json:"outputDir,omitempty"`
	TemplateFormats  []string `yaml:"templateFormats,omitempty" json:"templateFormats,omitempty"`
	HTMLEngine       string   `yaml:"htmlEngine,omitempty" json:"htmlEngine,omitempty"`
	MarkdownEngine   string   `yaml:"markdownEngine,omitempty" json:"markdownEngine,omitempty"`
}
