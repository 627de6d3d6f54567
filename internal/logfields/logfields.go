package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyRoot       = "root"
	KeyFormat     = "format"
	KeyField      = "field"
	KeyKind       = "kind"
	KeySeverity   = "severity"
	KeySnapshot   = "snapshot"
	KeyFiles      = "files"
	KeyBytes      = "bytes"
	KeyHash       = "sha256"
	KeyManifestID = "manifest_id"
	KeyCommand    = "command"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Field(f string) slog.Attr        { return slog.String(KeyField, f) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Severity(s string) slog.Attr     { return slog.String(KeySeverity, s) }
func Snapshot(s string) slog.Attr     { return slog.String(KeySnapshot, s) }
func Files(n int) slog.Attr           { return slog.Int(KeyFiles, n) }
func Bytes(n int64) slog.Attr         { return slog.Int64(KeyBytes, n) }
func Hash(h string) slog.Attr         { return slog.String(KeyHash, h) }
func ManifestID(id string) slog.Attr  { return slog.String(KeyManifestID, id) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
