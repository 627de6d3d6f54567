// Package contract checks a project tree against the filesystem expectations
// implied by a build configuration. Missing inputs are warnings: the external
// build tool treats them as no-ops, so nothing here fails a build.
package contract

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
)

// FindingKind classifies a contract finding.
type FindingKind string

const (
	KindMissingInput       FindingKind = "missing_input"
	KindMissingIncludes    FindingKind = "missing_includes"
	KindMissingData        FindingKind = "missing_data"
	KindMissingPassthrough FindingKind = "missing_passthrough"
	KindNotDirectory       FindingKind = "not_directory"
	KindOutputOverlap      FindingKind = "output_overlap"
	KindUnreadable         FindingKind = "unreadable"
	KindEscapesRoot        FindingKind = "escapes_root"
)

// Finding is one observation about the project tree.
type Finding struct {
	Kind     FindingKind          `json:"kind"`
	Severity errors.ErrorSeverity `json:"severity"`
	Path     string               `json:"path"`
	Message  string               `json:"message"`
}

// Entry records what was found at one configured location.
type Entry struct {
	Role   string `json:"role"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	IsDir  bool   `json:"is_dir"`
}

// Report is the outcome of Check.
type Report struct {
	Root     string    `json:"root"`
	Entries  []Entry   `json:"entries"`
	Findings []Finding `json:"findings"`
}

// Warnings returns findings with warning severity.
func (r *Report) Warnings() []Finding { return r.bySeverity(errors.SeverityWarning) }

// Errors returns findings with error severity.
func (r *Report) Errors() []Finding { return r.bySeverity(errors.SeverityError) }

func (r *Report) bySeverity(s errors.ErrorSeverity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// Err converts error findings into a classified error, or nil when there are none.
func (r *Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, f := range errs {
		msgs[i] = f.Message
	}
	return errors.FileSystemError(fmt.Sprintf("project tree violates build configuration: %s", strings.Join(msgs, "; "))).
		WithContext("root", r.Root).
		Build()
}

// Check inspects root for the locations cfg refers to. Includes and data
// resolve against the input directory; passthrough paths resolve against the
// project root, as the external tool resolves them.
func Check(root string, cfg siteconfig.BuildConfiguration) *Report {
	r := &Report{Root: root}
	if r.escapes(cfg) {
		sort.SliceStable(r.Findings, func(i, j int) bool { return r.Findings[i].Path < r.Findings[j].Path })
		return r
	}
	input := filepath.Join(root, filepath.FromSlash(cfg.InputDir))

	if exists, usable := r.inspect("input", input, cfg.InputDir, true); !exists && usable {
		r.add(KindMissingInput, errors.SeverityWarning, cfg.InputDir, "input directory %q does not exist", cfg.InputDir)
	}

	includesRel := joinRel(cfg.InputDir, cfg.IncludesDir)
	if exists, usable := r.inspect("includes", filepath.Join(input, filepath.FromSlash(cfg.IncludesDir)), includesRel, true); !exists && usable {
		r.add(KindMissingIncludes, errors.SeverityWarning, includesRel, "includes directory %q not found; layouts and partials will not resolve", includesRel)
	}

	dataRel := joinRel(cfg.InputDir, cfg.DataDir)
	if exists, usable := r.inspect("data", filepath.Join(input, filepath.FromSlash(cfg.DataDir)), dataRel, true); !exists && usable {
		r.add(KindMissingData, errors.SeverityWarning, dataRel, "data directory %q not found; no global data will be loaded", dataRel)
	}

	for _, p := range cfg.Passthrough() {
		rel := joinRel(".", p)
		if exists, usable := r.inspect("passthrough", filepath.Join(root, filepath.FromSlash(p)), rel, false); !exists && usable {
			r.add(KindMissingPassthrough, errors.SeverityWarning, rel, "passthrough path %q not found; nothing will be copied", rel)
		}
		if overlaps(cfg.OutputDir, rel) {
			r.add(KindOutputOverlap, errors.SeverityError, rel, "passthrough path %q overlaps output directory %q", rel, cfg.OutputDir)
		}
	}

	sort.SliceStable(r.Findings, func(i, j int) bool { return r.Findings[i].Path < r.Findings[j].Path })
	return r
}

// inspect stats abs and records an Entry. usable is false when a problem
// finding was recorded for the location.
func (r *Report) inspect(role, abs, rel string, wantDir bool) (exists, usable bool) {
	e := Entry{Role: role, Path: rel}
	info, err := os.Stat(abs)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		r.Entries = append(r.Entries, e)
		return false, true
	case err != nil:
		r.Entries = append(r.Entries, e)
		r.add(KindUnreadable, errors.SeverityError, rel, "cannot stat %q: %v", rel, err)
		return false, false
	}
	e.Exists = true
	e.IsDir = info.IsDir()
	r.Entries = append(r.Entries, e)
	if wantDir && !e.IsDir {
		r.add(KindNotDirectory, errors.SeverityError, rel, "%s path %q is not a directory", role, rel)
		return true, false
	}
	return true, true
}

// escapes records an error for every configured path that leaves the
// project root. Nothing below is inspected when any path does.
func (r *Report) escapes(cfg siteconfig.BuildConfiguration) bool {
	check := func(p string) {
		clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(p)))
		if filepath.IsAbs(p) || strings.HasPrefix(p, "/") || clean == ".." || strings.HasPrefix(clean, "../") {
			r.add(KindEscapesRoot, errors.SeverityError, p, "path %q is not inside the project root", p)
		}
	}
	check(cfg.InputDir)
	check(cfg.OutputDir)
	check(joinRel(cfg.InputDir, cfg.IncludesDir))
	check(joinRel(cfg.InputDir, cfg.DataDir))
	for _, p := range cfg.Passthrough() {
		check(p)
	}
	return len(r.Findings) > 0
}

func (r *Report) add(kind FindingKind, sev errors.ErrorSeverity, p, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Kind: kind, Severity: sev, Path: p, Message: fmt.Sprintf(format, args...)})
}

func joinRel(base, p string) string {
	return filepath.ToSlash(filepath.Join(filepath.FromSlash(base), filepath.FromSlash(p)))
}

// overlaps reports whether a and b name the same path or one contains the other.
func overlaps(a, b string) bool {
	a = filepath.ToSlash(filepath.Clean(a))
	b = filepath.ToSlash(filepath.Clean(b))
	if a == "." || b == "." {
		return false
	}
	return a == b || strings.HasPrefix(b, a+"/") || strings.HasPrefix(a, b+"/")
}
