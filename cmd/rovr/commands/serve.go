package commands

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/rovr/internal/metrics"
	"git.home.luguber.info/inful/rovr/internal/preview"
	"git.home.luguber.info/inful/rovr/internal/site"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Port int    `short:"p" help:"Port to listen on (overrides serve.port)"`
	Dest string `short:"d" help:"Destination directory (overrides the destination in _config.yml)" type:"path"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, _, err := loadSite(g, root.Src)
	if err != nil {
		return err
	}
	dest := s.Dest
	if dest == "" {
		dest = cfg.DestinationPath(root.Src)
	}
	port := cfg.Serve.Port
	if s.Port > 0 {
		port = s.Port
	}

	svc := site.NewService(g.Logger)
	var reg *prometheus.Registry
	if cfg.Serve.MetricsEnabled() {
		reg = prometheus.NewRegistry()
		svc.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	// Configuration and metadata are reloaded for every build; the
	// destination and server settings stay as started.
	build := func(ctx context.Context) error {
		cfg, meta, err := loadSite(g, root.Src)
		if err != nil {
			return err
		}
		_, err = svc.Run(ctx, site.Request{Src: root.Src, Dest: dest, Config: cfg, Site: meta})
		return err
	}

	server, err := preview.New(preview.Options{
		Src:             root.Src,
		Dest:            dest,
		Port:            port,
		Debounce:        cfg.Serve.Debounce,
		RebuildInterval: cfg.Serve.RebuildInterval,
		Metrics:         reg != nil,
		Registry:        reg,
		Build:           build,
		Logger:          g.Logger,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Serving %s on port %d (Ctrl+C to stop)\n", dest, port)
	return server.Run(g.Ctx)
}
