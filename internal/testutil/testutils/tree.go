package helpers

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates files below root. Keys are slash-separated relative paths;
// a key ending in "/" creates an empty directory.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			if err := os.MkdirAll(p, 0o750); err != nil {
				t.Fatalf("mkdir %s: %v", name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// SiteTree returns a project tree in which every location of the built-in
// build configuration exists, plus one page that is not passthrough.
func SiteTree() map[string]string {
	return map[string]string{
		"_includes/base.liquid": "{{ content }}",
		"_data/site.json":       "{}",
		"css/main.css":          "body{}",
		"images/logo.svg":       "<svg/>",
		"style.css":             "a{}",
		"index.md":              "# Home",
	}
}
