package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Status values recorded for a run.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusFailed  = "failed"
)

// BuildManifest is a record of one emit run: which configuration was emitted,
// what the passthrough rules matched, and which artifacts were written.
type BuildManifest struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Inputs    Inputs    `json:"inputs"`
	Plan      Plan      `json:"plan"`
	Findings  []Finding `json:"findings,omitempty"`
	Outputs   Outputs   `json:"outputs"`
	Tool      *ToolRun  `json:"tool,omitempty"`
	Status    string    `json:"status"`
	Duration  int64     `json:"duration_ms"`
}

// Inputs captures what the run was given.
type Inputs struct {
	Root       string `json:"root"`
	ConfigPath string `json:"config_path,omitempty"`
	Snapshot   string `json:"snapshot"`
}

// Plan summarises the passthrough copy plan.
type Plan struct {
	Files   int      `json:"files"`
	Bytes   int64    `json:"bytes"`
	Digest  string   `json:"digest"`
	Missing []string `json:"missing,omitempty"`
}

// Finding mirrors a filesystem contract finding.
type Finding struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
}

// Artifact is one emitted file.
type Artifact struct {
	Format string `json:"format"`
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// Outputs captures all outputs from the run.
type Outputs struct {
	Artifacts []Artifact `json:"artifacts"`
}

// ToolRun records the external tool dry run, when one was attempted.
type ToolRun struct {
	Status   string `json:"status"`
	Duration int64  `json:"duration_ms"`
}

// New returns a manifest with a fresh id and the current UTC time.
func New(version string) *BuildManifest {
	return &BuildManifest{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Version:   version,
		Status:    StatusSuccess,
	}
}

// AddArtifact records an emitted file, keeping artifacts ordered by path.
func (m *BuildManifest) AddArtifact(a Artifact) {
	m.Outputs.Artifacts = append(m.Outputs.Artifacts, a)
	sort.SliceStable(m.Outputs.Artifacts, func(i, j int) bool {
		return m.Outputs.Artifacts[i].Path < m.Outputs.Artifacts[j].Path
	})
}

// ToJSON serializes the manifest to JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if _, err := uuid.Parse(m.ID); err != nil {
		return nil, fmt.Errorf("manifest id %q: %w", m.ID, err)
	}
	return &m, nil
}

// Hash computes a deterministic hash over everything except the run id,
// timestamp and durations. Two runs over the same tree and configuration
// hash identically.
func (m *BuildManifest) Hash() (string, error) {
	hashInput := struct {
		Version   string     `json:"version"`
		Inputs    Inputs     `json:"inputs"`
		Plan      Plan       `json:"plan"`
		Findings  []Finding  `json:"findings"`
		Artifacts []Artifact `json:"artifacts"`
		Tool      string     `json:"tool"`
		Status    string     `json:"status"`
	}{
		Version:   m.Version,
		Inputs:    m.Inputs,
		Plan:      m.Plan,
		Findings:  m.Findings,
		Artifacts: m.Outputs.Artifacts,
		Status:    m.Status,
	}
	if m.Tool != nil {
		hashInput.Tool = m.Tool.Status
	}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// SameAs reports whether other describes an identical run.
func (m *BuildManifest) SameAs(other *BuildManifest) bool {
	if other == nil {
		return false
	}
	a, errA := m.Hash()
	b, errB := other.Hash()
	return errA == nil && errB == nil && a == b
}
