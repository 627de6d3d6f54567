package siteconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BuildConfiguration)
		want   []string
	}{
		{
			name:   "empty template formats",
			mutate: func(c *BuildConfiguration) { c.TemplateFormats = nil },
			want:   []string{"templateFormats: must not be empty"},
		},
		{
			name:   "unknown html engine",
			mutate: func(c *BuildConfiguration) { c.HTMLEngine = "erb" },
			want:   []string{`htmlEngine: unsupported engine "erb"`},
		},
		{
			name:   "empty markdown engine",
			mutate: func(c *BuildConfiguration) { c.MarkdownEngine = "" },
			want:   []string{`markdownEngine: unsupported engine ""`},
		},
		{
			name:   "absolute output",
			mutate: func(c *BuildConfiguration) { c.OutputDir = "/var/www" },
			want:   []string{`outputDir: "/var/www" must be relative to the project root`},
		},
		{
			name:   "escaping data dir",
			mutate: func(c *BuildConfiguration) { c.DataDir = "../shared/_data" },
			want:   []string{`dataDir: "../shared/_data" escapes the project root`},
		},
		{
			name:   "empty includes dir",
			mutate: func(c *BuildConfiguration) { c.IncludesDir = " " },
			want:   []string{"includesDir: must not be empty"},
		},
		{
			name:   "duplicate passthrough",
			mutate: func(c *BuildConfiguration) { c.PassthroughPaths = append(c.PassthroughPaths, "css/") },
			want:   []string{`passthroughPaths: duplicate entry "css/"`},
		},
		{
			name:   "unknown and duplicate formats",
			mutate: func(c *BuildConfiguration) { c.TemplateFormats = []string{"html", "erb", "html"} },
			want: []string{
				`templateFormats: unsupported format "erb"`,
				`templateFormats: duplicate entry "html"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
			assert.Equal(t, tt.want, Violations(err))
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := Default()
	cfg.HTMLEngine = "erb"
	cfg.MarkdownEngine = "php"
	cfg.TemplateFormats = nil

	assert.Len(t, Violations(cfg.Validate()), 3)
}

func TestValidate_AllSupportedEnginesAccepted(t *testing.T) {
	for _, e := range SupportedEngines() {
		cfg := Default()
		cfg.HTMLEngine = e
		cfg.MarkdownEngine = e
		cfg.TemplateFormats = []string{string(e)}
		assert.NoError(t, cfg.Validate(), "engine %s", e)
	}
}

func TestViolations_NonValidationError(t *testing.T) {
	assert.Nil(t, Violations(nil))
	assert.Nil(t, Violations(errors.ConfigError("x").Build()))
}
