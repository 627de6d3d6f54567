package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitecfg"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg              *prom.Registry
	validations      *prom.CounterVec
	findings         *prom.CounterVec
	artifacts        *prom.CounterVec
	passthroughFiles prom.Gauge
	passthroughBytes prom.Gauge
	toolDuration     *prom.HistogramVec
	runDuration      prom.Histogram
	runOutcome       *prom.CounterVec
	lastRun          prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg,
// or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		validations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Build configuration validations by result",
		}, []string{"result"}),
		findings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "contract_findings_total",
			Help:      "Filesystem contract findings by kind and severity",
		}, []string{"kind", "severity"}),
		artifacts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_emitted_total",
			Help:      "Emitted configuration artifacts by format",
		}, []string{"format"}),
		passthroughFiles: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "passthrough_files",
			Help:      "Files matched by passthrough rules in the last plan",
		}),
		passthroughBytes: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "passthrough_bytes",
			Help:      "Total size of files matched by passthrough rules in the last plan",
		}),
		toolDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_check_duration_seconds",
			Help:      "Duration of the external tool dry run",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total duration of an emit run",
			Buckets:   prom.DefBuckets,
		}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Emit runs by final status",
		}, []string{"result"}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run",
		}),
	}
	reg.MustRegister(pr.validations, pr.findings, pr.artifacts, pr.passthroughFiles,
		pr.passthroughBytes, pr.toolDuration, pr.runDuration, pr.runOutcome, pr.lastRun)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) IncValidation(result ResultLabel) {
	if p == nil {
		return
	}
	p.validations.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncFinding(kind, severity string) {
	if p == nil {
		return
	}
	p.findings.WithLabelValues(kind, severity).Inc()
}

func (p *PrometheusRecorder) IncArtifact(format string) {
	if p == nil {
		return
	}
	p.artifacts.WithLabelValues(format).Inc()
}

func (p *PrometheusRecorder) SetPassthrough(files int, bytes int64) {
	if p == nil {
		return
	}
	p.passthroughFiles.Set(float64(files))
	p.passthroughBytes.Set(float64(bytes))
}

func (p *PrometheusRecorder) ObserveToolDuration(result ResultLabel, d time.Duration) {
	if p == nil {
		return
	}
	p.toolDuration.WithLabelValues(string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(result ResultLabel) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(result)).Inc()
	p.lastRun.SetToCurrentTime()
}

// WriteTextfile writes the registry in the text exposition format for the
// node exporter textfile collector. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
