package manifest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *BuildManifest {
	m := New("v1.2.3")
	m.Inputs = Inputs{Root: "/srv/site", ConfigPath: "sitecfg.yaml", Snapshot: "snap"}
	m.Plan = Plan{Files: 3, Bytes: 42, Digest: "digest", Missing: []string{"images"}}
	m.Findings = []Finding{{Kind: "missing_passthrough", Severity: "warning", Path: "images"}}
	m.AddArtifact(Artifact{Format: "json", Path: "sitecfg.lock.json", SHA256: "b"})
	m.AddArtifact(Artifact{Format: "js", Path: ".eleventy.js", SHA256: "a"})
	m.Tool = &ToolRun{Status: "skipped"}
	m.Duration = 12
	return m
}

func TestNew(t *testing.T) {
	m := New("dev")
	_, err := uuid.Parse(m.ID)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, m.Timestamp.Location())
	assert.Equal(t, StatusSuccess, m.Status)
	assert.NotEqual(t, m.ID, New("dev").ID)
}

func TestManifestSerialization(t *testing.T) {
	m := sample()

	data, err := m.ToJSON()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	restored, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, m.ID, restored.ID)
	assert.True(t, m.Timestamp.Equal(restored.Timestamp))
	assert.Equal(t, m.Inputs, restored.Inputs)
	assert.Equal(t, m.Plan, restored.Plan)
	assert.Equal(t, m.Findings, restored.Findings)
	assert.Equal(t, m.Outputs, restored.Outputs)
	assert.Equal(t, "skipped", restored.Tool.Status)
}

func TestFromJSON_RejectsBadInput(t *testing.T) {
	_, err := FromJSON([]byte("{"))
	require.Error(t, err)

	_, err = FromJSON([]byte(`{"id":"not-a-uuid"}`))
	require.Error(t, err)
}

func TestAddArtifact_SortsByPath(t *testing.T) {
	m := sample()
	require.Len(t, m.Outputs.Artifacts, 2)
	assert.Equal(t, ".eleventy.js", m.Outputs.Artifacts[0].Path)
}

func TestHash_IgnoresVolatileFields(t *testing.T) {
	a := sample()
	b := sample()
	b.Timestamp = b.Timestamp.Add(time.Hour)
	b.Duration = 9999
	b.Tool.Duration = 500

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, ha, hb)
	assert.True(t, a.SameAs(b))
}

func TestHash_DetectsChanges(t *testing.T) {
	a := sample()
	b := sample()
	b.Outputs.Artifacts[0].SHA256 = "changed"
	assert.False(t, a.SameAs(b))

	c := sample()
	c.Inputs.Snapshot = "other"
	assert.False(t, a.SameAs(c))

	assert.False(t, a.SameAs(nil))
}
