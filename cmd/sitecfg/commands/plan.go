package commands

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/passthrough"
)

// PlanCmd implements the 'plan' command.
type PlanCmd struct {
	JSON bool `help:"Print the plan as JSON"`
}

func (p *PlanCmd) Run(g *Global, root *CLI) error {
	sess, err := root.open()
	if err != nil {
		return err
	}
	plan, err := passthrough.Plan(sess.root, sess.build)
	if err != nil {
		return err
	}
	out := g.out()

	if p.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return errors.InternalError("encode plan").WithCause(err).Build()
		}
		return nil
	}
	for _, f := range plan.Files {
		_, _ = fmt.Fprintf(out, "%s -> %s (%d bytes)\n", f.Source, f.Destination, f.Size)
	}
	for _, m := range plan.Missing {
		_, _ = fmt.Fprintf(out, "missing: %s\n", m)
	}
	_, _ = fmt.Fprintf(out, "%d file(s), %d bytes, digest %s\n", len(plan.Files), plan.TotalBytes(), plan.Digest()[:12])
	return nil
}
