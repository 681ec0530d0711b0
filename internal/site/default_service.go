package site

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/rovr/internal/component"
	"git.home.luguber.info/inful/rovr/internal/config"
	"git.home.luguber.info/inful/rovr/internal/content"
	foundationerrors "git.home.luguber.info/inful/rovr/internal/foundation/errors"
	"git.home.luguber.info/inful/rovr/internal/layout"
	"git.home.luguber.info/inful/rovr/internal/logfields"
	"git.home.luguber.info/inful/rovr/internal/markdown"
	"git.home.luguber.info/inful/rovr/internal/metrics"
	"git.home.luguber.info/inful/rovr/internal/observability"
	"git.home.luguber.info/inful/rovr/internal/render"
)

// Stage names of the build pipeline.
const (
	StageDiscover = "discover"
	StageLoad     = "load"
	StageRegister = "register"
	StageRender   = "render"
	StageWrite    = "write"
)

// Service is the build pipeline: discover → load → register → render → write.
type Service struct {
	recorder metrics.Recorder
	logger   *slog.Logger
	newID    func() string
}

// NewService creates a Service that records nothing and logs to logger.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		recorder: metrics.NoopRecorder{},
		logger:   logger,
		newID:    func() string { return uuid.NewString() },
	}
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

type build struct {
	*Service
	ctx    context.Context
	req    Request
	cfg    *config.Config
	dest   string
	result *Result
}

// Run executes a complete build. The returned Result is never nil.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{StartTime: start, BuildID: s.newID()}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	cfg := req.Config
	if cfg == nil {
		cfg = config.Default()
	}
	dest := req.Dest
	if dest == "" {
		dest = cfg.DestinationPath(req.Src)
	}
	result.OutputPath = dest

	b := &build{Service: s, ctx: ctx, req: req, cfg: cfg, dest: dest, result: result}
	err := b.run()

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)
	s.recorder.ObserveBuildDuration(result.Duration)

	switch {
	case err == nil:
		result.Status = StatusSuccess
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		s.recorder.AddFiles(metrics.FileRendered, result.Rendered)
		s.recorder.AddFiles(metrics.FileCopied, result.Copied)
		s.recorder.AddFiles(metrics.FileSkipped, result.Skipped)
		observability.InfoContext(ctx, s.logger, "Build completed",
			logfields.Path(dest),
			logfields.DurationMS(float64(result.Duration.Microseconds())/1000),
			slog.Int("rendered", result.Rendered),
			slog.Int("copied", result.Copied),
			slog.Int("skipped", result.Skipped))
		return result, nil
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		result.Status = StatusCanceled
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		observability.WarnContext(ctx, s.logger, "Build canceled")
		return result, err
	default:
		result.Status = StatusFailed
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return result, classify(err)
	}
}

func (b *build) run() error {
	src, err := filepath.Abs(b.req.Src)
	if err != nil {
		return foundationerrors.FileSystemError(err, "failed to resolve source directory").
			WithContext("src", b.req.Src).
			Build()
	}
	if err := checkDestination(src, b.dest); err != nil {
		return err
	}
	observability.InfoContext(b.ctx, b.logger, "Starting build", logfields.Source(src), logfields.Path(b.dest))

	var paths []string
	err = b.stage(StageDiscover, func(ctx context.Context) (err error) {
		paths, err = content.Discover(ctx, src, content.DiscoverOptions{
			Excludes: b.cfg.Excludes,
			Includes: b.cfg.Includes,
			Dest:     b.dest,
		})
		if err != nil {
			return fsError(err, "failed to discover source files", src)
		}
		observability.DebugContext(ctx, b.logger, "Discovered files", logfields.Count(len(paths)))
		return nil
	})
	if err != nil {
		return err
	}

	var items []*content.Item
	err = b.stage(StageLoad, func(ctx context.Context) error {
		loader := content.NewLoader(src, b.logger)
		items = make([]*content.Item, 0, len(paths))
		for _, p := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := loader.Load(p)
			if err != nil {
				return fsError(err, "failed to read source file", p)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var renderer *render.Renderer
	err = b.stage(StageRegister, func(ctx context.Context) (err error) {
		renderer, err = b.register(ctx, items)
		return err
	})
	if err != nil {
		return err
	}

	err = b.stage(StageRender, func(ctx context.Context) error {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := renderer.Render(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return b.stage(StageWrite, func(ctx context.Context) error {
		return b.write(ctx, src, items)
	})
}

// register collects layouts and component definitions and builds the
// renderer. Sources of both are never rendered themselves.
func (b *build) register(ctx context.Context, items []*content.Item) (*render.Renderer, error) {
	layouts := layout.NewRegistry(b.logger)
	var defs []component.Definition

	for _, item := range items {
		isLayout := layout.IsLayoutPath(item.SourcePath)
		isComponent := component.IsComponentPath(item.SourcePath)
		if !isLayout && !isComponent {
			continue
		}
		item.ShouldParse = false
		if !item.IsValidText {
			observability.WarnContext(ctx, b.logger, "Ignoring non-text source", logfields.Path(item.SourcePath))
			continue
		}
		if isLayout {
			layouts.Register(layout.Layout{
				Name:     layout.NameFromPath(item.SourcePath),
				Body:     item.Body,
				Metadata: item.Metadata,
				Source:   item.SourcePath,
			})
			continue
		}
		defs = append(defs, component.Definition{
			Name:   component.NameFromPath(item.SourcePath),
			Source: item.Body,
		})
	}

	site := b.req.Site
	if site == nil {
		site = map[string]any{}
	}
	engine, err := component.Compile(defs, component.Context{Site: site}, component.Options{
		MaxExpansionPasses: b.cfg.Limits.MaxExpansionPasses,
		MaxUnwrapPasses:    b.cfg.Limits.MaxUnwrapPasses,
	})
	if err != nil {
		return nil, err
	}
	observability.DebugContext(ctx, b.logger, "Registered sources",
		slog.Int("layouts", layouts.Len()),
		slog.Int("components", engine.Len()))

	return render.New(render.Deps{
		Site:       site,
		Layouts:    layouts,
		Components: engine,
		Markdown:   markdown.NewConverter(b.cfg.HighlightStyle),
		Options: render.Options{
			Highlight: b.cfg.HighlightSyntax,
			Limits:    b.cfg.Limits,
		},
		Recorder: b.recorder,
		Logger:   b.logger,
	}), nil
}

// stage runs fn under a stage-tagged context and records its duration and
// result.
func (b *build) stage(name string, fn func(ctx context.Context) error) error {
	ctx, timer := observability.StartStage(b.ctx, b.logger, name)
	err := fn(ctx)
	b.recorder.ObserveStageDuration(name, timer.End(err))
	switch {
	case err == nil:
		b.recorder.IncStageResult(name, metrics.ResultSuccess)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		b.recorder.IncStageResult(name, metrics.ResultCanceled)
	default:
		b.recorder.IncStageResult(name, metrics.ResultFailed)
	}
	return err
}
