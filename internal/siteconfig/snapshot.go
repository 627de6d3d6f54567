package siteconfig

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Snapshot computes a stable hash of the configuration. Passthrough order is
// ignored; template format order is significant because the external tool
// honours it.
func (c BuildConfiguration) Snapshot() string {
	h := sha256.New()
	field(h, "passthrough", c.Passthrough()...)
	field(h, "dir.input", c.InputDir)
	field(h, "dir.includes", c.IncludesDir)
	field(h, "dir.data", c.DataDir)
	field(h, "dir.output", c.OutputDir)
	field(h, "template_formats", c.TemplateFormats...)
	field(h, "engine.html", string(c.HTMLEngine))
	field(h, "engine.markdown", string(c.MarkdownEngine))
	return hex.EncodeToString(h.Sum(nil))
}

// field writes name, the value count and each value, all length prefixed.
func field(h hash.Hash, name string, values ...string) {
	put := func(s string) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	put(name)
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(values)))
	h.Write(n[:])
	for _, v := range values {
		put(v)
	}
}
