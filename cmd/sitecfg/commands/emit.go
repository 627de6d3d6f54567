package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/contract"
	"git.home.luguber.info/inful/sitecfg/internal/emit"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/manifest"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	"git.home.luguber.info/inful/sitecfg/internal/passthrough"
	"git.home.luguber.info/inful/sitecfg/internal/tool"
	"git.home.luguber.info/inful/sitecfg/internal/version"
)

// EmitCmd implements the 'emit' command.
type EmitCmd struct {
	NoTool bool `name:"no-tool" help:"Skip the external tool dry run even when enabled"`
}

func (e *EmitCmd) Run(g *Global, root *CLI) error {
	start := time.Now()
	cfg, cfgPath, err := root.loadConfig()
	if err != nil {
		return err
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}

	sess, err := root.newSession(cfg, cfgPath, rec)
	var m *manifest.BuildManifest
	if err == nil {
		m, err = e.run(g, sess, rec)
	}

	outcome := metrics.ResultSuccess
	switch {
	case err != nil:
		outcome = metrics.ResultFailed
	case m != nil && m.Status == manifest.StatusWarning:
		outcome = metrics.ResultWarning
	}
	rec.ObserveRunDuration(time.Since(start))
	rec.IncRunOutcome(outcome)

	if prom != nil {
		path := cfg.Metrics.Textfile
		if sess != nil {
			path = sess.inRoot(path)
		}
		if werr := writeTextfile(prom, path); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(werr))
			if err == nil {
				err = werr
			}
		}
	}
	return err
}

func (e *EmitCmd) run(g *Global, sess *session, rec metrics.Recorder) (*manifest.BuildManifest, error) {
	out := g.out()
	m := manifest.New(version.Version)
	m.Inputs = manifest.Inputs{Root: sess.root, ConfigPath: sess.cfgPath, Snapshot: sess.build.Snapshot()}
	started := time.Now()

	report := contract.Check(sess.root, sess.build)
	for _, f := range report.Findings {
		rec.IncFinding(string(f.Kind), string(f.Severity))
		m.Findings = append(m.Findings, manifest.Finding{Kind: string(f.Kind), Severity: string(f.Severity), Path: f.Path})
		if f.Severity == errors.SeverityWarning {
			slog.Warn(f.Message, logfields.Kind(string(f.Kind)), logfields.Path(f.Path))
		}
	}
	if err := report.Err(); err != nil {
		return nil, err
	}
	if len(report.Warnings()) > 0 {
		m.Status = manifest.StatusWarning
	}

	plan, err := passthrough.Plan(sess.root, sess.build)
	if err != nil {
		return nil, err
	}
	rec.SetPassthrough(len(plan.Files), plan.TotalBytes())
	m.Plan = manifest.Plan{Files: len(plan.Files), Bytes: plan.TotalBytes(), Digest: plan.Digest(), Missing: plan.Missing}

	var jsTarget string
	for _, t := range sess.cfg.Emit.Targets {
		art, err := emit.WriteFile(sess.inRoot(t.Path), t.Format, sess.build)
		if err != nil {
			return nil, err
		}
		rec.IncArtifact(string(t.Format))
		m.AddArtifact(manifest.Artifact{Format: string(t.Format), Path: t.Path, SHA256: art.SHA256})
		_, _ = fmt.Fprintf(out, "wrote %s (%s, %d bytes)\n", t.Path, t.Format, art.Bytes)
		if t.Format == config.EmitFormatJS && jsTarget == "" {
			jsTarget = t.Path
		}
	}

	toolErr := e.runTool(g, sess, jsTarget, m, rec)
	if toolErr != nil {
		m.Status = manifest.StatusFailed
	}
	m.Duration = time.Since(started).Milliseconds()

	if err := writeManifest(sess, m); err != nil {
		return nil, err
	}
	slog.Info("Emit complete",
		logfields.ManifestID(m.ID),
		logfields.Snapshot(m.Inputs.Snapshot),
		logfields.Files(len(m.Outputs.Artifacts)))
	return m, toolErr
}

func (e *EmitCmd) runTool(g *Global, sess *session, jsTarget string, m *manifest.BuildManifest, rec metrics.Recorder) error {
	if e.NoTool || jsTarget == "" || !sess.cfg.Tool.Enabled {
		return nil
	}
	runner, err := tool.NewRunner(sess.cfg.Tool)
	if err != nil {
		return err
	}
	res, err := runner.Check(g.context(), sess.root, jsTarget)
	m.Tool = &manifest.ToolRun{Status: string(res.Status), Duration: res.Duration.Milliseconds()}

	label := metrics.ResultSuccess
	switch res.Status {
	case tool.StatusSkipped:
		label = metrics.ResultSkipped
	case tool.StatusFailed:
		label = metrics.ResultFailed
	}
	rec.ObserveToolDuration(label, res.Duration)
	_, _ = fmt.Fprintf(g.out(), "external tool: %s\n", res.Status)
	return err
}

// writeManifest stores m at emit.manifest, noting when the previous run
// produced an identical result.
func writeManifest(sess *session, m *manifest.BuildManifest) error {
	if sess.cfg.Emit.Manifest == "" {
		return nil
	}
	path := sess.inRoot(sess.cfg.Emit.Manifest)

	// #nosec G304 -- manifest path comes from configuration
	if prev, err := os.ReadFile(path); err == nil {
		if old, perr := manifest.FromJSON(prev); perr == nil && m.SameAs(old) {
			slog.Info("Output unchanged since previous run", logfields.ManifestID(old.ID))
		}
	}

	data, err := m.ToJSON()
	if err != nil {
		return errors.InternalError("serialize manifest").WithCause(err).Build()
	}
	sum, err := emit.WriteBytes(path, append(data, '\n'))
	if err != nil {
		return err
	}
	slog.Debug("Wrote manifest", logfields.Path(path), logfields.Hash(sum))
	return nil
}

func writeTextfile(prom *metrics.PrometheusRecorder, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create metrics directory").Build()
	}
	if err := prom.WriteTextfile(path); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write metrics textfile").Build()
	}
	return nil
}
