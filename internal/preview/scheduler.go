package preview

import (
	"fmt"

	"github.com/go-co-op/gocron/v2"
)

// startScheduler requests a rebuild every RebuildInterval. Scheduled builds
// go through the same worker as change-triggered ones.
func (s *Server) startScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(s.schedOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(s.opts.RebuildInterval),
		gocron.NewTask(s.requestRebuild),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}
	s.logger.Info("Periodic rebuild scheduled", "interval", s.opts.RebuildInterval.String())
	sched.Start()
	return sched, nil
}
