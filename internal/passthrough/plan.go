// Package passthrough enumerates the files the external build tool copies
// verbatim into the output directory. It plans only; copying stays with the tool.
package passthrough

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
)

// File is one planned copy. Source and Destination are slash separated and
// relative to the project root.
type File struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Size        int64  `json:"size"`
	SHA256      string `json:"sha256"`
}

// CopyPlan lists every file a passthrough rule matches.
type CopyPlan struct {
	Root    string   `json:"root"`
	Files   []File   `json:"files"`
	Missing []string `json:"missing,omitempty"`
}

// TotalBytes sums the planned file sizes.
func (p *CopyPlan) TotalBytes() int64 {
	var n int64
	for _, f := range p.Files {
		n += f.Size
	}
	return n
}

// Digest is a sha256 over the ordered (destination, content hash) pairs.
func (p *CopyPlan) Digest() string {
	h := sha256.New()
	for _, f := range p.Files {
		h.Write([]byte(f.Destination))
		h.Write([]byte{0})
		h.Write([]byte(f.SHA256))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Plan walks each passthrough path below the project root. A rule naming a
// file yields that file; a rule naming a directory yields every regular file
// beneath it. Rules matching nothing are listed in Missing.
func Plan(root string, cfg siteconfig.BuildConfiguration) (*CopyPlan, error) {
	plan := &CopyPlan{Root: root}
	seen := make(map[string]struct{})

	for _, rule := range cfg.Passthrough() {
		base := filepath.Join(root, filepath.FromSlash(rule))
		info, err := os.Stat(base)
		if stderrors.Is(err, fs.ErrNotExist) {
			plan.Missing = append(plan.Missing, rule)
			continue
		}
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "stat passthrough path").
				WithContext("path", rule).
				Build()
		}

		if !info.IsDir() {
			if err := plan.addFile(root, base, cfg, seen); err != nil {
				return nil, err
			}
			continue
		}

		walkErr := filepath.WalkDir(base, func(p string, d fs.DirEntry, werr error) error {
			if werr != nil {
				return werr
			}
			if !d.Type().IsRegular() {
				return nil
			}
			return plan.addFile(root, p, cfg, seen)
		})
		if walkErr != nil {
			return nil, errors.WrapError(walkErr, errors.CategoryFileSystem, "walk passthrough directory").
				WithContext("path", rule).
				Build()
		}
	}

	sort.Slice(plan.Files, func(i, j int) bool { return plan.Files[i].Source < plan.Files[j].Source })
	return plan, nil
}

func (p *CopyPlan) addFile(root, abs string, cfg siteconfig.BuildConfiguration, seen map[string]struct{}) error {
	srcRel, err := filepath.Rel(root, abs)
	if err != nil {
		return fmt.Errorf("relative source for %s: %w", abs, err)
	}
	src := filepath.ToSlash(srcRel)
	if _, dup := seen[src]; dup {
		return nil
	}
	seen[src] = struct{}{}

	size, sum, err := hashFile(abs)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "hash passthrough file").
			WithContext("path", src).
			Build()
	}
	p.Files = append(p.Files, File{
		Source:      src,
		Destination: Destination(cfg, src),
		Size:        size,
		SHA256:      sum,
	})
	return nil
}

// Destination maps a root-relative source to its output path. A leading input
// directory is stripped, so src/css/a.css lands at <output>/css/a.css.
func Destination(cfg siteconfig.BuildConfiguration, src string) string {
	rel := path.Clean(src)
	if in := path.Clean(filepath.ToSlash(cfg.InputDir)); in != "." && strings.HasPrefix(rel, in+"/") {
		rel = strings.TrimPrefix(rel, in+"/")
	}
	return path.Join(filepath.ToSlash(cfg.OutputDir), rel)
}

func hashFile(path string) (int64, string, error) {
	// #nosec G304 -- path comes from walking configured passthrough rules
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", err
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}
