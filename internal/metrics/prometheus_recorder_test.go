package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncValidation(ResultSuccess)
	pr.IncFinding("missing_passthrough", "warning")
	pr.IncFinding("missing_passthrough", "warning")
	pr.IncArtifact("js")
	pr.SetPassthrough(4, 1024)
	pr.ObserveToolDuration(ResultSkipped, 0)
	pr.ObserveRunDuration(250 * time.Millisecond)
	pr.IncRunOutcome(ResultWarning)

	assert.InDelta(t, 1, testutil.ToFloat64(pr.validations.WithLabelValues("success")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.findings.WithLabelValues("missing_passthrough", "warning")), 0)
	assert.InDelta(t, 1024, testutil.ToFloat64(pr.passthroughBytes), 0)
	assert.Positive(t, testutil.ToFloat64(pr.lastRun))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
	assert.Same(t, reg, pr.Registry())
}

func TestPrometheusRecorder_NilRegistry(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	require.NotNil(t, pr.Registry())
	pr.IncArtifact("json")
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncArtifact("yaml")
	path := filepath.Join(t.TempDir(), "sitecfg.prom")

	require.NoError(t, pr.WriteTextfile(path))

	// #nosec G304 - test file
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `sitecfg_artifacts_emitted_total{format="yaml"} 1`))
}

func TestWriteTextfile_MissingDirectory(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	err := pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
}
