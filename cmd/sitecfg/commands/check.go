package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitecfg/internal/contract"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	JSON   bool `help:"Print the report as JSON"`
	Strict bool `help:"Fail on warnings as well as errors"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	sess, err := root.open()
	if err != nil {
		return err
	}
	report := contract.Check(sess.root, sess.build)
	out := g.out()

	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.InternalError("encode report").WithCause(err).Build()
		}
	} else {
		for _, f := range report.Findings {
			_, _ = fmt.Fprintf(out, "%-7s  %-20s  %s\n", f.Severity, f.Kind, f.Message)
		}
		_, _ = fmt.Fprintf(out, "%d error(s), %d warning(s)\n", len(report.Errors()), len(report.Warnings()))
	}
	slog.Debug("Contract check complete", logfields.Root(sess.root), slog.Int("findings", len(report.Findings)))

	if err := report.Err(); err != nil {
		return err
	}
	if c.Strict && len(report.Warnings()) > 0 {
		return errors.ValidationError(fmt.Sprintf("%d warning(s) in strict mode", len(report.Warnings()))).
			WithContext("root", sess.root).
			Build()
	}
	return nil
}
