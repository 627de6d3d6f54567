package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFailed  ResultLabel = "failed"
	ResultSkipped ResultLabel = "skipped"
)

// Recorder defines observability hooks for sitecfg runs. NoopRecorder is the
// default so callers never need nil checks.
type Recorder interface {
	IncValidation(result ResultLabel)
	IncFinding(kind, severity string)
	IncArtifact(format string)
	SetPassthrough(files int, bytes int64)
	ObserveToolDuration(result ResultLabel, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncValidation(ResultLabel)                      {}
func (NoopRecorder) IncFinding(string, string)                      {}
func (NoopRecorder) IncArtifact(string)                             {}
func (NoopRecorder) SetPassthrough(int, int64)                      {}
func (NoopRecorder) ObserveToolDuration(ResultLabel, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)               {}
func (NoopRecorder) IncRunOutcome(ResultLabel)                      {}
