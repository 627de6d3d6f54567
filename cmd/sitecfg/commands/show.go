package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/emit"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Format string `short:"f" help:"Output format (js, json, yaml)" default:"js"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	format := config.NormalizeEmitFormat(s.Format)
	if format == "" {
		return errors.ValidationError(fmt.Sprintf("unknown format %q (valid: %v)", s.Format, config.EmitFormats())).
			WithContext("format", s.Format).
			Build()
	}
	sess, err := root.open()
	if err != nil {
		return err
	}
	out, err := emit.Render(format, sess.build)
	if err != nil {
		return err
	}
	_, err = g.out().Write(out)
	return err
}
