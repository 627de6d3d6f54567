package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	NoopRecorder
	artifacts map[string]int
	outcomes  map[ResultLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{artifacts: map[string]int{}, outcomes: map[ResultLabel]int{}}
}

func (t *testRecorder) IncArtifact(format string)        { t.artifacts[format]++ }
func (t *testRecorder) IncRunOutcome(result ResultLabel) { t.outcomes[result]++ }

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = (*testRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncValidation(ResultFailed)
	r.IncFinding("x", "error")
	r.SetPassthrough(1, 1)
	r.ObserveToolDuration(ResultSuccess, time.Second)
	r.ObserveRunDuration(time.Second)
}

func TestRecorderEmbedding(t *testing.T) {
	tr := newTestRecorder()
	var r Recorder = tr
	r.IncArtifact("js")
	r.IncArtifact("js")
	r.IncRunOutcome(ResultSuccess)
	r.IncValidation(ResultSuccess)

	if tr.artifacts["js"] != 2 {
		t.Fatalf("expected 2 js artifacts, got %d", tr.artifacts["js"])
	}
	if tr.outcomes[ResultSuccess] != 1 {
		t.Fatalf("expected 1 success outcome, got %d", tr.outcomes[ResultSuccess])
	}
}
