package config

import (
	"log/slog"

	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
)

// BuildConfiguration resolves the effective build configuration: the built-in
// default with any site overlay values applied, normalized and validated.
// Without an overlay the result equals siteconfig.Default().
func (c *Config) BuildConfiguration() (siteconfig.BuildConfiguration, error) {
	base := siteconfig.Default()
	if c == nil || c.Site == nil {
		return base, nil
	}
	merged := c.Site.apply(base)
	norm, res := merged.Normalize()
	for _, w := range res.Warnings {
		slog.Debug("site overlay normalization", "warning", w)
	}
	if err := norm.Validate(); err != nil {
		return siteconfig.BuildConfiguration{}, err
	}
	return norm, nil
}

func (o *SiteOverlay) apply(base siteconfig.BuildConfiguration) siteconfig.BuildConfiguration {
	out := base.Clone()
	if o.PassthroughPaths != nil {
		out.PassthroughPaths = append([]string(nil), o.PassthroughPaths...)
	}
	if o.InputDir != "" {
		out.InputDir = o.InputDir
	}
	if o.IncludesDir != "" {
		out.IncludesDir = o.IncludesDir
	}
	if o.DataDir != "" {
		out.DataDir = o.DataDir
	}
	if o.OutputDir != "" {
		out.OutputDir = o.OutputDir
	}
	if o.TemplateFormats != nil {
		out.TemplateFormats = append([]string(nil), o.TemplateFormats...)
	}
	if o.HTMLEngine != "" {
		out.HTMLEngine = siteconfig.Engine(o.HTMLEngine)
	}
	if o.MarkdownEngine != "" {
		out.MarkdownEngine = siteconfig.Engine(o.MarkdownEngine)
	}
	return out
}
