// Package metrics provides observability hooks for sitecfg runs.
//
// Components receive a Recorder. NoopRecorder is the default and costs
// nothing; PrometheusRecorder collects counters and gauges on a registry that
// the CLI writes out for the node exporter textfile collector when
// metrics.textfile is configured:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	rec.IncArtifact("js")
//	_ = rec.WriteTextfile("/var/lib/node_exporter/sitecfg.prom")
package metrics
