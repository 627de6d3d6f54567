package siteconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Canonicalizes(t *testing.T) {
	raw := BuildConfiguration{
		PassthroughPaths: []string{" style.css", "images/", "css", "css", ""},
		InputDir:         "./",
		IncludesDir:      "_includes/",
		DataDir:          `_data`,
		OutputDir:        "site/",
		TemplateFormats:  []string{".HTML", "markdown", "liquid", "Nunjucks", "md"},
		HTMLEngine:       "Liquid",
		MarkdownEngine:   " LIQUID ",
	}

	cfg, res := raw.Normalize()

	assert.Equal(t, []string{"css", "images", "style.css"}, cfg.PassthroughPaths)
	assert.Equal(t, ".", cfg.InputDir)
	assert.Equal(t, "_includes", cfg.IncludesDir)
	assert.Equal(t, "site", cfg.OutputDir)
	assert.Equal(t, []string{"html", "md", "liquid", "njk"}, cfg.TemplateFormats)
	assert.Equal(t, EngineLiquid, cfg.HTMLEngine)
	assert.Equal(t, EngineLiquid, cfg.MarkdownEngine)
	assert.NotEmpty(t, res.Warnings)

	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Equal(Default()))
	assert.Equal(t, "css", raw.PassthroughPaths[2], "input must not be modified")
}

func TestNormalize_KeepsUnknownEngineForValidation(t *testing.T) {
	raw := Default()
	raw.HTMLEngine = "erb"

	cfg, _ := raw.Normalize()
	assert.Equal(t, Engine("erb"), cfg.HTMLEngine)
	assert.Error(t, cfg.Validate())
}

func TestNormalizeTemplateFormat(t *testing.T) {
	assert.Equal(t, "md", NormalizeTemplateFormat(".md"))
	assert.Equal(t, "njk", NormalizeTemplateFormat("nunjucks"))
	assert.Equal(t, "11ty.js", NormalizeTemplateFormat("11ty.js"))
	assert.Equal(t, "", NormalizeTemplateFormat("erb"))
}

func TestNormalizeEngine(t *testing.T) {
	assert.Equal(t, EngineHandlebars, NormalizeEngine("Handlebars"))
	assert.Equal(t, Engine(""), NormalizeEngine("smarty"))
	assert.True(t, EnginePug.IsSupported())
	assert.False(t, Engine("").IsSupported())
}
