// Package emit renders a BuildConfiguration in the formats its consumers read:
// an Eleventy config module for the external tool, and JSON or YAML for
// tooling and humans.
package emit

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
)

const generatedHeader = "Code generated by sitecfg; DO NOT EDIT."

var eleventyTemplate = template.Must(template.New("eleventy").Funcs(template.FuncMap{
	"quote": quote,
	"list":  quoteList,
}).Parse(`// {{ .Header }}
module.exports = function (eleventyConfig) {
{{- range .Passthrough }}
  eleventyConfig.addPassthroughCopy({{ quote . }});
{{- end }}

  return {
    dir: {
      input: {{ quote .InputDir }},
      includes: {{ quote .IncludesDir }},
      data: {{ quote .DataDir }},
      output: {{ quote .OutputDir }},
    },
    templateFormats: {{ list .TemplateFormats }},
    htmlTemplateEngine: {{ quote .HTMLEngine }},
    markdownTemplateEngine: {{ quote .MarkdownEngine }},
  };
};
`))

type eleventyView struct {
	Header          string
	Passthrough     []string
	InputDir        string
	IncludesDir     string
	DataDir         string
	OutputDir       string
	TemplateFormats []string
	HTMLEngine      string
	MarkdownEngine  string
}

// Render produces cfg in the given format. Passthrough paths are emitted
// sorted so output only changes when the configuration does.
func Render(format config.EmitFormat, cfg siteconfig.BuildConfiguration) ([]byte, error) {
	canonical := cfg.Clone()
	canonical.PassthroughPaths = cfg.Passthrough()

	switch format {
	case config.EmitFormatJS:
		return renderJS(canonical)
	case config.EmitFormatJSON:
		b, err := json.MarshalIndent(canonical, "", "  ")
		if err != nil {
			return nil, errors.EmitError("marshal json").WithCause(err).Build()
		}
		return append(b, '\n'), nil
	case config.EmitFormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(canonical); err != nil {
			return nil, errors.EmitError("marshal yaml").WithCause(err).Build()
		}
		if err := enc.Close(); err != nil {
			return nil, errors.EmitError("flush yaml").WithCause(err).Build()
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.ValidationError(fmt.Sprintf("unsupported emit format %q", format)).
			WithContext("format", string(format)).
			Build()
	}
}

func renderJS(cfg siteconfig.BuildConfiguration) ([]byte, error) {
	view := eleventyView{
		Header:          generatedHeader,
		Passthrough:     cfg.PassthroughPaths,
		InputDir:        cfg.InputDir,
		IncludesDir:     cfg.IncludesDir,
		DataDir:         cfg.DataDir,
		OutputDir:       cfg.OutputDir,
		TemplateFormats: cfg.TemplateFormats,
		HTMLEngine:      cfg.HTMLEngine.String(),
		MarkdownEngine:  cfg.MarkdownEngine.String(),
	}
	var buf bytes.Buffer
	if err := eleventyTemplate.Execute(&buf, view); err != nil {
		return nil, errors.EmitError("render eleventy config").WithCause(err).Build()
	}
	return buf.Bytes(), nil
}

// quote renders s as a JavaScript string literal. JSON string syntax is a
// subset of it and encoding/json escapes U+2028 and U+2029.
func quote(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func quoteList(items []string) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			buf.WriteString(", ")
		}
		q, err := quote(s)
		if err != nil {
			return "", err
		}
		buf.WriteString(q)
	}
	buf.WriteByte(']')
	return buf.String(), nil
}

// Artifact describes one written file.
type Artifact struct {
	Format config.EmitFormat `json:"format"`
	Path   string            `json:"path"`
	Bytes  int               `json:"bytes"`
	SHA256 string            `json:"sha256"`
}

// WriteFile renders cfg and atomically replaces path with the result. Parent
// directories are created as needed.
func WriteFile(path string, format config.EmitFormat, cfg siteconfig.BuildConfiguration) (Artifact, error) {
	data, err := Render(format, cfg)
	if err != nil {
		return Artifact{}, err
	}
	sum, err := writeAtomic(path, data)
	if err != nil {
		return Artifact{}, err
	}
	slog.Debug("Wrote artifact",
		logfields.Path(path),
		logfields.Format(string(format)),
		logfields.Bytes(int64(len(data))),
		logfields.Hash(sum))
	return Artifact{Format: format, Path: path, Bytes: len(data), SHA256: sum}, nil
}

// WriteBytes atomically replaces path with data and returns its sha256.
func WriteBytes(path string, data []byte) (string, error) {
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", path).
			Build()
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return "", errors.EmitError("create pending file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	defer func() {
		if cerr := pending.Cleanup(); cerr != nil {
			slog.Debug("cleanup pending file", logfields.Path(path), logfields.Error(cerr))
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return "", errors.EmitError("write pending file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return "", errors.EmitError("atomically replace file").WithCause(err).
			WithContext("path", path).
			Build()
	}

	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
