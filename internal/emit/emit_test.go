package emit

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
)

// normalizeYAML round-trips through a generic map so goldens compare content
// rather than emitter layout.
func normalizeYAML(t *testing.T, b []byte) []byte {
	t.Helper()
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(b, &m))
	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	return out
}

func compareGolden(t *testing.T, name string, actual []byte, normalize func(*testing.T, []byte) []byte) {
	t.Helper()
	golden := filepath.Join("testdata", name)
	// #nosec G304 - test file
	want, err := os.ReadFile(golden)
	require.NoError(t, err, "read golden")

	got := actual
	if normalize != nil {
		want = normalize(t, want)
		got = normalize(t, actual)
	}
	if bytes.Equal(bytes.TrimSpace(want), bytes.TrimSpace(got)) {
		return
	}
	if os.Getenv("UPDATE_GOLDEN") == "1" {
		require.NoError(t, os.WriteFile(golden, actual, 0o600), "update golden")
		return
	}
	t.Fatalf("%s mismatch; run UPDATE_GOLDEN=1 go test ./internal/emit -run %s to accept\n--- want\n%s\n--- got\n%s",
		name, t.Name(), want, got)
}

func customConfig() siteconfig.BuildConfiguration {
	return siteconfig.BuildConfiguration{
		PassthroughPaths: []string{"favicon.ico", "assets"},
		InputDir:         "src",
		IncludesDir:      "layouts",
		DataDir:          "_data",
		OutputDir:        "dist",
		TemplateFormats:  []string{"njk", "md"},
		HTMLEngine:       siteconfig.EngineNunjucks,
		MarkdownEngine:   siteconfig.EngineMarkdown,
	}
}

func TestRenderGolden(t *testing.T) {
	cases := []struct {
		golden    string
		format    config.EmitFormat
		cfg       siteconfig.BuildConfiguration
		normalize func(*testing.T, []byte) []byte
	}{
		{"default.js", config.EmitFormatJS, siteconfig.Default(), nil},
		{"default.json", config.EmitFormatJSON, siteconfig.Default(), nil},
		{"default.yaml", config.EmitFormatYAML, siteconfig.Default(), normalizeYAML},
		{"custom.js", config.EmitFormatJS, customConfig(), nil},
	}
	for _, tc := range cases {
		t.Run(tc.golden, func(t *testing.T) {
			out, err := Render(tc.format, tc.cfg)
			require.NoError(t, err)
			compareGolden(t, tc.golden, out, tc.normalize)
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	for _, f := range []config.EmitFormat{config.EmitFormatJS, config.EmitFormatJSON, config.EmitFormatYAML} {
		a, err := Render(f, siteconfig.Default())
		require.NoError(t, err)

		shuffled := siteconfig.Default()
		shuffled.PassthroughPaths = []string{"style.css", "css", "images"}
		b, err := Render(f, shuffled)
		require.NoError(t, err)

		assert.Equal(t, string(a), string(b), "format %s", f)
	}
}

func TestRender_JSONRoundTrip(t *testing.T) {
	out, err := Render(config.EmitFormatJSON, siteconfig.Default())
	require.NoError(t, err)

	var got siteconfig.BuildConfiguration
	require.NoError(t, json.Unmarshal(out, &got))
	assert.True(t, got.Equal(siteconfig.Default()))
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(config.EmitFormat("toml"), siteconfig.Default())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestQuote_Escapes(t *testing.T) {
	q, err := quote(`a"b\c` + " ")
	require.NoError(t, err)
	assert.Equal(t, `"a\"b\\c "`, q)

	l, err := quoteList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", l)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".eleventy.js")

	art, err := WriteFile(path, config.EmitFormatJS, siteconfig.Default())
	require.NoError(t, err)

	// #nosec G304 - test file
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	sum := sha256.Sum256(written)

	assert.Equal(t, hex.EncodeToString(sum[:]), art.SHA256)
	assert.Equal(t, len(written), art.Bytes)
	assert.Equal(t, config.EmitFormatJS, art.Format)

	again, err := WriteFile(path, config.EmitFormatJS, siteconfig.Default())
	require.NoError(t, err)
	assert.Equal(t, art.SHA256, again.SHA256)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteFile_ReplaceFailureIsEmitError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".eleventy.js")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "occupied"), 0o750))

	_, err := WriteFile(path, config.EmitFormatJS, siteconfig.Default())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryEmit))

	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.True(t, ce.IsFatal())
}
