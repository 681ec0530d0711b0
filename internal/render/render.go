// Package render sequences the rendering stages for one file at a time.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/rovr/internal/component"
	"git.home.luguber.info/inful/rovr/internal/content"
	"git.home.luguber.info/inful/rovr/internal/layout"
	"git.home.luguber.info/inful/rovr/internal/limits"
	"git.home.luguber.info/inful/rovr/internal/markdown"
	"git.home.luguber.info/inful/rovr/internal/metrics"
	"git.home.luguber.info/inful/rovr/internal/observability"
	"git.home.luguber.info/inful/rovr/internal/view"
)

// Stage names, used in logs, errors and metrics.
const (
	StageMarkdown    = "markdown"
	StageLayout      = "layout"
	StageInterpolate = "interpolate"
	StageComponents  = "components"
	StageUnwrap      = "unwrap"
	StagePostProcess = "postprocess"
)

// Options holds per-build switches.
type Options struct {
	Highlight bool
	Limits    limits.Bounds
}

// Deps are the collaborators of a Renderer. Components may be nil when the
// site defines none; invocations then fail as unknown.
type Deps struct {
	Site       map[string]any
	Layouts    *layout.Registry
	Components *component.Engine
	Markdown   *markdown.Converter
	Options    Options
	Recorder   metrics.Recorder
	Logger     *slog.Logger
}

// Renderer is the context of one build: it is created when the build starts
// and dropped when it ends.
type Renderer struct {
	site       map[string]any
	composer   *layout.Composer
	components *component.Engine
	markdown   *markdown.Converter
	opts       Options
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// New creates a Renderer from deps.
func New(d Deps) *Renderer {
	opts := d.Options
	opts.Limits = opts.Limits.WithDefaults()

	if d.Layouts == nil {
		d.Layouts = layout.NewRegistry(d.Logger)
	}
	if d.Markdown == nil {
		d.Markdown = markdown.NewConverter("")
	}
	if d.Components == nil {
		// An empty definition set always parses.
		d.Components, _ = component.Compile(nil, component.Context{Site: d.Site}, component.Options{
			MaxExpansionPasses: opts.Limits.MaxExpansionPasses,
			MaxUnwrapPasses:    opts.Limits.MaxUnwrapPasses,
		})
	}
	if d.Recorder == nil {
		d.Recorder = metrics.NoopRecorder{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Site == nil {
		d.Site = map[string]any{}
	}

	return &Renderer{
		site:       d.Site,
		composer:   layout.NewComposer(d.Layouts, opts.Limits.MaxLayoutDepth),
		components: d.Components,
		markdown:   d.Markdown,
		opts:       opts,
		recorder:   d.Recorder,
		logger:     d.Logger,
	}
}

// Error reports the stage and file a rendering failure happened in.
type Error struct {
	Path  string
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Render renders item in place. Items not marked for parsing are left alone.
//
// Markdown is converted first and the output path rewritten to .html. Every
// parsed item is then composed into its layout and interpolated, site scope
// before content scope. Markup items finally have components expanded,
// wrappers removed and post-processing applied.
func (r *Renderer) Render(ctx context.Context, item *content.Item) error {
	if !item.ShouldParse {
		return nil
	}
	ctx = observability.WithPath(ctx, item.SourcePath)
	body := item.Body

	if item.IsMarkdown() {
		err := r.stage(ctx, item, StageMarkdown, func() (err error) {
			body, err = r.markdown.ToMarkup([]byte(body), markdown.Options{Highlight: r.opts.Highlight})
			return err
		})
		if err != nil {
			return err
		}
		item.Path = content.OutputPathForMarkdown(item.Path)
	}

	v := view.New(body, item.Metadata)

	if name := v.LayoutName(); name != "" {
		err := r.stage(ctx, item, StageLayout, func() (err error) {
			v, err = r.composer.Compose(v, name)
			return err
		})
		if err != nil {
			return err
		}
	}

	err := r.stage(ctx, item, StageInterpolate, func() error {
		v = v.ApplyMetadata("site", r.site)
		v = v.ApplyMetadata("content", v.Metadata)
		return nil
	})
	if err != nil {
		return err
	}

	if item.IsMarkup() {
		out, err := r.renderMarkup(ctx, item, v.Content)
		if err != nil {
			return err
		}
		v.Content = out
	}

	item.Body = v.Content
	item.Metadata = v.Metadata
	observability.DebugContext(ctx, r.logger, "Rendered file")
	return nil
}

func (r *Renderer) renderMarkup(ctx context.Context, item *content.Item, markup string) (string, error) {
	err := r.stage(ctx, item, StageComponents, func() error {
		out, passes, err := r.components.ExpandWithPasses(markup)
		if err != nil {
			var unknown *component.UnknownComponentError
			if errors.As(err, &unknown) && unknown.Path == "" {
				unknown.Path = item.SourcePath
			}
			return err
		}
		r.recorder.ObserveExpansionPasses(passes)
		markup = out
		return nil
	})
	if err != nil {
		return "", err
	}

	err = r.stage(ctx, item, StageUnwrap, func() (err error) {
		markup, err = component.RemoveWrappers(markup, r.opts.Limits.MaxUnwrapPasses)
		return err
	})
	if err != nil {
		return "", err
	}

	err = r.stage(ctx, item, StagePostProcess, func() (err error) {
		markup, err = component.PostProcess(markup, r.opts.Highlight)
		return err
	})
	if err != nil {
		return "", err
	}
	return markup, nil
}

// stage runs fn, timing it and recording the result.
func (r *Renderer) stage(ctx context.Context, item *content.Item, name string, fn func() error) error {
	_, timer := observability.StartStage(ctx, r.logger, name)
	err := fn()
	r.recorder.ObserveStageDuration(name, timer.End(err))
	if err != nil {
		r.recorder.IncStageResult(name, metrics.ResultFailed)
		return &Error{Path: item.SourcePath, Stage: name, Err: err}
	}
	r.recorder.IncStageResult(name, metrics.ResultSuccess)
	return nil
}
