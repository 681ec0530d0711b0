package site

import (
	"errors"

	"git.home.luguber.info/inful/rovr/internal/component"
	foundationerrors "git.home.luguber.info/inful/rovr/internal/foundation/errors"
	"git.home.luguber.info/inful/rovr/internal/layout"
	"git.home.luguber.info/inful/rovr/internal/limits"
	"git.home.luguber.info/inful/rovr/internal/render"
)

// classify turns a pipeline failure into a ClassifiedError. Errors that are
// already classified pass through.
func classify(err error) error {
	if _, ok := foundationerrors.AsClassified(err); ok {
		return err
	}

	var compileErr *component.CompileError
	if errors.As(err, &compileErr) {
		return foundationerrors.WrapError(compileErr.Err, foundationerrors.CategoryComponent, "component failed to compile").
			Fatal().
			WithContext("component", compileErr.Name).
			Build()
	}

	var renderErr *render.Error
	if !errors.As(err, &renderErr) {
		return foundationerrors.WrapError(err, foundationerrors.CategoryBuild, "build failed").Build()
	}

	builder := classifyRender(renderErr.Err, renderErr.Stage).
		WithPath(renderErr.Path).
		WithContext("stage", renderErr.Stage)
	return builder.Build()
}

func classifyRender(err error, stage string) *foundationerrors.ErrorBuilder {
	var (
		missing  *layout.MissingLayoutError
		unknown  *component.UnknownComponentError
		exceeded *limits.ExceededError
		compErr  *component.RenderError
	)
	switch {
	case errors.As(err, &missing):
		b := foundationerrors.WrapError(err, foundationerrors.CategoryLayout, "render failed").
			WithContext("layout", missing.Name)
		if missing.Referrer != "" {
			b = b.WithContext("referrer", missing.Referrer)
		}
		return b
	case errors.As(err, &unknown):
		return foundationerrors.WrapError(err, foundationerrors.CategoryComponent, "render failed").
			WithContext("component", unknown.Name)
	case errors.As(err, &exceeded):
		category := foundationerrors.CategoryComponent
		if exceeded.Kind == limits.KindLayoutDepth || exceeded.Kind == limits.KindLayoutCycle {
			category = foundationerrors.CategoryLayout
		}
		return foundationerrors.WrapError(err, category, "composition limit exceeded").
			WithContext("kind", string(exceeded.Kind)).
			WithContext("limit", exceeded.Limit)
	case errors.As(err, &compErr):
		return foundationerrors.WrapError(err, foundationerrors.CategoryComponent, "render failed").
			WithContext("component", compErr.Name)
	case stage == render.StageMarkdown:
		return foundationerrors.WrapError(err, foundationerrors.CategoryMarkdown, "render failed")
	default:
		return foundationerrors.WrapError(err, foundationerrors.CategoryBuild, "render failed")
	}
}
