package siteconfig

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// Validate checks the configuration invariants: every directory and
// passthrough path is local to the project root, template formats are a
// non-empty duplicate-free list of recognized extensions, and both engines are
// supported by the external tool. All violations are reported together.
func (c BuildConfiguration) Validate() error {
	var violations []error

	for _, d := range []struct{ field, value string }{
		{"inputDir", c.InputDir},
		{"includesDir", c.IncludesDir},
		{"dataDir", c.DataDir},
		{"outputDir", c.OutputDir},
	} {
		if err := validateLocalPath(d.field, d.value); err != nil {
			violations = append(violations, err)
		}
	}

	seen := make(map[string]struct{}, len(c.PassthroughPaths))
	for _, p := range c.PassthroughPaths {
		if err := validateLocalPath("passthroughPaths", p); err != nil {
			violations = append(violations, err)
			continue
		}
		key := filepath.Clean(p)
		if _, dup := seen[key]; dup {
			violations = append(violations, fmt.Errorf("passthroughPaths: duplicate entry %q", p))
		}
		seen[key] = struct{}{}
	}

	if len(c.TemplateFormats) == 0 {
		violations = append(violations, stderrors.New("templateFormats: must not be empty"))
	}
	formats := make(map[string]struct{}, len(c.TemplateFormats))
	for _, f := range c.TemplateFormats {
		if !Engine(f).IsSupported() {
			violations = append(violations, fmt.Errorf("templateFormats: unsupported format %q", f))
		}
		if _, dup := formats[f]; dup {
			violations = append(violations, fmt.Errorf("templateFormats: duplicate entry %q", f))
		}
		formats[f] = struct{}{}
	}

	if !c.HTMLEngine.IsSupported() {
		violations = append(violations, fmt.Errorf("htmlEngine: unsupported engine %q", c.HTMLEngine))
	}
	if !c.MarkdownEngine.IsSupported() {
		violations = append(violations, fmt.Errorf("markdownEngine: unsupported engine %q", c.MarkdownEngine))
	}

	if len(violations) == 0 {
		return nil
	}

	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Error()
	}
	return errors.ValidationError("invalid build configuration").
		WithCause(stderrors.Join(violations...)).
		WithContext("violations", msgs).
		Build()
}

func validateLocalPath(field, p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%s: must not be empty", field)
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return fmt.Errorf("%s: %q must be relative to the project root", field, p)
	}
	if !filepath.IsLocal(p) {
		return fmt.Errorf("%s: %q escapes the project root", field, p)
	}
	return nil
}

// Violations extracts the individual violation messages from a Validate error.
func Violations(err error) []string {
	classified, ok := errors.AsClassified(err)
	if !ok {
		return nil
	}
	v, _ := classified.Context().Get("violations")
	msgs, _ := v.([]string)
	return msgs
}
