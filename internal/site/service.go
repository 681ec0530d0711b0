// Package site runs a complete build of a source tree into a destination
// directory. The CLI build command and the preview server both route through
// Service.
package site

import (
	"time"

	"git.home.luguber.info/inful/rovr/internal/config"
)

// Request contains all inputs of one build.
type Request struct {
	// Src is the source directory.
	Src string

	// Dest overrides the destination derived from Config.
	Dest string

	// Config is the loaded site configuration. Defaults apply when nil.
	Config *config.Config

	// Site is the site-wide metadata exposed as the `site` scope.
	Site map[string]any
}

// Result contains the outcome of a build.
type Result struct {
	Status  Status
	BuildID string

	// OutputPath is the destination directory that was written.
	OutputPath string

	// Rendered counts parsed files written with their rendered body.
	Rendered int
	// Copied counts files written byte-for-byte.
	Copied int
	// Skipped counts files kept out of the output (layouts, components and
	// other underscore paths).
	Skipped int

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Status represents the outcome of a build.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// IsSuccess returns true if the build completed successfully.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}
