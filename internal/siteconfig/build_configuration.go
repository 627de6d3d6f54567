package siteconfig

import (
	"slices"
	"sort"
)

// Fixed values of the project's build configuration.
const (
	DefaultInputDir    = "."
	DefaultIncludesDir = "_includes"
	DefaultDataDir     = "_data"
	DefaultOutputDir   = "site"
)

// BuildConfiguration describes build behaviour to the external static-site tool.
//
// PassthroughPaths has set semantics (order carries no meaning and Default
// keeps it sorted). TemplateFormats is an ordered set.
type BuildConfiguration struct {
	PassthroughPaths []string `json:"passthroughPaths" yaml:"passthroughPaths"`
	InputDir         string   `json:"inputDir" yaml:"inputDir"`
	IncludesDir      string   `json:"includesDir" yaml:"includesDir"`
	DataDir          string   `json:"dataDir" yaml:"dataDir"`
	OutputDir        string   `json:"outputDir" yaml:"outputDir"`
	TemplateFormats  []string `json:"templateFormats" yaml:"templateFormats"`
	HTMLEngine       Engine   `json:"htmlEngine" yaml:"htmlEngine"`
	MarkdownEngine   Engine   `json:"markdownEngine" yaml:"markdownEngine"`
}

// Default returns the project's build configuration. It takes no input and
// cannot fail; missing directories are the external tool's concern.
func Default() BuildConfiguration {
	return BuildConfiguration{
		PassthroughPaths: []string{"css", "images", "style.css"},
		InputDir:         DefaultInputDir,
		IncludesDir:      DefaultIncludesDir,
		DataDir:          DefaultDataDir,
		OutputDir:        DefaultOutputDir,
		TemplateFormats:  []string{"html", "md", "liquid", "njk"},
		HTMLEngine:       EngineLiquid,
		MarkdownEngine:   EngineLiquid,
	}
}

// Clone returns a deep copy.
func (c BuildConfiguration) Clone() BuildConfiguration {
	out := c
	out.PassthroughPaths = slices.Clone(c.PassthroughPaths)
	out.TemplateFormats = slices.Clone(c.TemplateFormats)
	return out
}

// Passthrough returns the passthrough paths sorted and deduplicated, as a fresh slice.
func (c BuildConfiguration) Passthrough() []string {
	out := slices.Clone(c.PassthroughPaths)
	sort.Strings(out)
	return slices.Compact(out)
}

// HasPassthrough reports whether p is declared as a passthrough path.
func (c BuildConfiguration) HasPassthrough(p string) bool {
	return slices.Contains(c.PassthroughPaths, p)
}

// Formats returns the template formats in declared order, as a fresh slice.
func (c BuildConfiguration) Formats() []string {
	return slices.Clone(c.TemplateFormats)
}

// Equal reports structural equality: passthrough paths compare as sets,
// template formats compare in order.
func (c BuildConfiguration) Equal(o BuildConfiguration) bool {
	return c.InputDir == o.InputDir &&
		c.IncludesDir == o.IncludesDir &&
		c.DataDir == o.DataDir &&
		c.OutputDir == o.OutputDir &&
		c.HTMLEngine == o.HTMLEngine &&
		c.MarkdownEngine == o.MarkdownEngine &&
		slices.Equal(c.TemplateFormats, o.TemplateFormats) &&
		slices.Equal(c.Passthrough(), o.Passthrough())
}
