package siteconfig

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// NormalizationResult captures adjustments made while canonicalizing a configuration.
type NormalizationResult struct{ Warnings []string }

// Normalize returns a canonical copy of c: paths trimmed and cleaned to slash
// form, passthrough paths sorted and deduplicated, template formats
// deduplicated in first-seen order, engine names canonicalized. Values that
// cannot be canonicalized are kept as written so Validate can report them.
func (c BuildConfiguration) Normalize() (BuildConfiguration, *NormalizationResult) {
	res := &NormalizationResult{}
	out := c.Clone()

	out.InputDir = normalizeDir("inputDir", out.InputDir, res)
	out.IncludesDir = normalizeDir("includesDir", out.IncludesDir, res)
	out.DataDir = normalizeDir("dataDir", out.DataDir, res)
	out.OutputDir = normalizeDir("outputDir", out.OutputDir, res)

	out.PassthroughPaths = normalizePassthrough(out.PassthroughPaths, res)
	out.TemplateFormats = normalizeFormats(out.TemplateFormats, res)

	out.HTMLEngine = normalizeEngineField("htmlEngine", out.HTMLEngine, res)
	out.MarkdownEngine = normalizeEngineField("markdownEngine", out.MarkdownEngine, res)

	return out, res
}

func normalizeDir(field, raw string, res *NormalizationResult) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return t
	}
	cleaned := path.Clean(strings.ReplaceAll(t, "\\", "/"))
	if cleaned != raw {
		res.Warnings = append(res.Warnings, warnChanged(field, raw, cleaned))
	}
	return cleaned
}

func normalizePassthrough(in []string, res *NormalizationResult) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	changed := false
	for _, v := range in {
		t := strings.TrimSpace(v)
		if t == "" {
			changed = true
			continue
		}
		t = path.Clean(strings.ReplaceAll(t, "\\", "/"))
		if _, ok := seen[t]; ok {
			changed = true
			continue
		}
		if t != v {
			changed = true
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	slices.Sort(out)

	if changed {
		res.Warnings = append(res.Warnings, fmt.Sprintf("normalized passthroughPaths list (%d -> %d entries)", len(in), len(out)))
	}
	return out
}

func normalizeFormats(in []string, res *NormalizationResult) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		t := strings.TrimSpace(v)
		if t == "" {
			res.Warnings = append(res.Warnings, "dropped empty templateFormats entry")
			continue
		}
		if canon := NormalizeTemplateFormat(t); canon != "" {
			if canon != v {
				res.Warnings = append(res.Warnings, warnChanged("templateFormats entry", v, canon))
			}
			t = canon
		}
		if _, ok := seen[t]; ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("dropped duplicate templateFormats entry '%s'", t))
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func normalizeEngineField(field string, raw Engine, res *NormalizationResult) Engine {
	canon := NormalizeEngine(string(raw))
	if canon == "" {
		return raw
	}
	if canon != raw {
		res.Warnings = append(res.Warnings, warnChanged(field, raw, canon))
	}
	return canon
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}
