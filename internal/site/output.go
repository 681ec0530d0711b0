package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/rovr/internal/content"
	foundationerrors "git.home.luguber.info/inful/rovr/internal/foundation/errors"
	"git.home.luguber.info/inful/rovr/internal/logfields"
	"git.home.luguber.info/inful/rovr/internal/observability"
)

// checkDestination refuses destinations whose cleaning would remove the
// source tree.
func checkDestination(src, dest string) error {
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return fsError(err, "failed to resolve destination directory", dest)
	}
	rel, err := filepath.Rel(destAbs, src)
	if err == nil && (rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))) {
		return foundationerrors.ValidationError("destination must not contain the source directory").
			WithContext("src", src).
			WithContext("dest", destAbs).
			Build()
	}
	return nil
}

// write empties the destination and writes every item that belongs in the
// output: parsed items with their rendered body, the rest as read.
func (b *build) write(ctx context.Context, src string, items []*content.Item) error {
	if err := os.RemoveAll(b.dest); err != nil {
		return fsError(err, "failed to clean destination directory", b.dest)
	}
	if err := os.MkdirAll(b.dest, 0o750); err != nil {
		return fsError(err, "failed to create destination directory", b.dest)
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !item.ShouldWrite() {
			b.result.Skipped++
			continue
		}

		target := filepath.Join(b.dest, filepath.FromSlash(item.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fsError(err, "failed to create output directory", filepath.Dir(target))
		}

		data := item.Raw
		if item.ShouldParse {
			data = []byte(item.Body)
		}
		// #nosec G306 -- site output is meant to be world readable
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fsError(err, "failed to write output file", target)
		}

		if item.ShouldParse {
			b.result.Rendered++
		} else {
			b.result.Copied++
		}
		observability.DebugContext(ctx, b.logger, "Wrote file",
			logfields.Source(filepath.Join(src, filepath.FromSlash(item.SourcePath))),
			logfields.Path(target))
	}
	return nil
}

func fsError(err error, message, path string) error {
	if ctxErr := contextError(err); ctxErr != nil {
		return ctxErr
	}
	return foundationerrors.FileSystemError(err, message).
		WithPath(path).
		Build()
}

// contextError returns err when it is a cancellation, so it is not
// reclassified as a filesystem failure.
func contextError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
