package observability

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/rovr/internal/logfields"
)

// StageTimer measures one rendering stage and logs its completion at debug level.
type StageTimer struct {
	ctx    context.Context
	logger *slog.Logger
	stage  string
	start  time.Time
}

// StartStage tags ctx with the stage name and starts a timer for it.
func StartStage(ctx context.Context, logger *slog.Logger, stage string) (context.Context, *StageTimer) {
	ctx = WithStage(ctx, stage)
	return ctx, &StageTimer{ctx: ctx, logger: logger, stage: stage, start: time.Now()}
}

// End logs the stage outcome and returns the elapsed time.
func (s *StageTimer) End(err error) time.Duration {
	elapsed := time.Since(s.start)
	attrs := []slog.Attr{logfields.DurationMS(float64(elapsed.Microseconds()) / 1000)}
	if err != nil {
		attrs = append(attrs, logfields.Error(err))
		DebugContext(s.ctx, s.logger, "Stage failed", attrs...)
		return elapsed
	}
	DebugContext(s.ctx, s.logger, "Stage completed", attrs...)
	return elapsed
}

// Stage returns the name of the timed stage.
func (s *StageTimer) Stage() string { return s.stage }
