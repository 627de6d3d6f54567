package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/emit"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
	"git.home.luguber.info/inful/sitecfg/internal/tool"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Tool bool `help:"Also ask the external tool to accept the configuration (dry run)"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	sess, err := root.open()
	if err != nil {
		for _, msg := range siteconfig.Violations(err) {
			_, _ = fmt.Fprintf(out, "invalid: %s\n", msg)
		}
		return err
	}
	_, _ = fmt.Fprintf(out, "configuration valid (snapshot %s)\n", sess.build.Snapshot()[:12])

	if !v.Tool {
		return nil
	}
	res, err := v.runTool(g, sess)
	if err != nil && res.Status == "" {
		return err
	}
	if res.Status == tool.StatusSkipped {
		_, _ = fmt.Fprintf(out, "external tool: skipped (%s)\n", res.Reason)
		return nil
	}
	_, _ = fmt.Fprintf(out, "external tool: %s\n", res.Status)
	return err
}

// runTool writes the rendered config module to a scratch file inside the
// project root, where the tool resolves its paths, and dry runs it.
func (v *ValidateCmd) runTool(g *Global, sess *session) (tool.Result, error) {
	toolCfg := sess.cfg.Tool
	toolCfg.Enabled = true
	runner, err := tool.NewRunner(toolCfg)
	if err != nil {
		return tool.Result{}, err
	}

	data, err := emit.Render(config.EmitFormatJS, sess.build)
	if err != nil {
		return tool.Result{}, err
	}
	f, err := os.CreateTemp(sess.root, ".sitecfg-validate-*.js")
	if err != nil {
		return tool.Result{}, errors.WrapError(err, errors.CategoryFileSystem, "create scratch config").Build()
	}
	defer func() { _ = os.Remove(f.Name()) }()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return tool.Result{}, errors.WrapError(err, errors.CategoryFileSystem, "write scratch config").Build()
	}
	if err := f.Close(); err != nil {
		return tool.Result{}, errors.WrapError(err, errors.CategoryFileSystem, "close scratch config").Build()
	}
	return runner.Check(g.context(), sess.root, filepath.Base(f.Name()))
}
