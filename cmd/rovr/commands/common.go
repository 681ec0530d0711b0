// Package commands implements the rovr command line.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rovr/internal/config"
	"git.home.luguber.info/inful/rovr/internal/markdown"
	"git.home.luguber.info/inful/rovr/internal/version"
)

// Global is the state shared by every command.
type Global struct {
	Ctx       context.Context
	Out       io.Writer
	LogOutput io.Writer

	Logger *slog.Logger
	level  *slog.LevelVar
}

// CLI definition & global flags.
type CLI struct {
	Src     string           `short:"s" help:"Site source directory" default:"." type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Render the source directory into the destination directory"`
	Serve ServeCmd `cmd:"" help:"Build, serve and rebuild the site on changes"`
	Init  InitCmd  `cmd:"" help:"Scaffold a new site in the source directory"`
}

// NewParser returns the kong parser for cli with g bound for commands.
func NewParser(cli *CLI, g *Global, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("rovr"),
		kong.Description("A static site renderer with layouts, components and markdown."),
		kong.UsageOnError(),
		kong.Vars{
			"version":       version.String(),
			"default_style": markdown.DefaultStyle,
		},
		kong.Bind(g, cli),
	}
	return kong.New(cli, append(opts, options...)...)
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	if g.Ctx == nil {
		g.Ctx = context.Background()
	}
	if g.Out == nil {
		g.Out = os.Stdout
	}
	if g.LogOutput == nil {
		g.LogOutput = os.Stderr
	}
	g.level = new(slog.LevelVar)
	if c.Verbose {
		g.level.Set(slog.LevelDebug)
	}
	g.Logger = slog.New(slog.NewTextHandler(g.LogOutput, &slog.HandlerOptions{Level: g.level}))
	slog.SetDefault(g.Logger)
	return nil
}

// loadSite reads the configuration and site metadata of src. A `verbose`
// config setting raises the log level like -v.
func loadSite(g *Global, src string) (*config.Config, map[string]any, error) {
	cfg, err := config.Load(src, g.Logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Verbose && g.level != nil {
		g.level.Set(slog.LevelDebug)
	}
	site, err := config.LoadMetadata(src, g.Logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, site, nil
}
