package commands

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/rovr/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Dest string `short:"d" help:"Destination directory (overrides the destination in _config.yml)" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, meta, err := loadSite(g, root.Src)
	if err != nil {
		return err
	}

	result, err := site.NewService(g.Logger).Run(g.Ctx, site.Request{
		Src:    root.Src,
		Dest:   b.Dest,
		Config: cfg,
		Site:   meta,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Built %s: %d rendered, %d copied, %d skipped in %s\n",
		result.OutputPath, result.Rendered, result.Copied, result.Skipped, result.Duration.Round(time.Millisecond))
	return nil
}
