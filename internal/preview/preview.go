// Package preview serves a built site locally and rebuilds it when the
// source tree changes.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus"

	foundationerrors "git.home.luguber.info/inful/rovr/internal/foundation/errors"
	"git.home.luguber.info/inful/rovr/internal/logfields"
)

// BuildFunc runs one complete build.
type BuildFunc func(ctx context.Context) error

// Options configure a preview Server.
type Options struct {
	Src  string
	Dest string
	// Port 0 picks a free port.
	Port int
	// Debounce is the quiet period after a change before rebuilding.
	Debounce time.Duration
	// RebuildInterval, when positive, also rebuilds on a fixed schedule.
	RebuildInterval time.Duration
	// Metrics exposes Registry on /metrics.
	Metrics  bool
	Registry *prometheus.Registry
	Build    BuildFunc
	Logger   *slog.Logger
}

// Server is a running preview: an HTTP listener, a filesystem watcher and a
// single rebuild worker.
type Server struct {
	opts      Options
	src       string
	dest      string
	logger    *slog.Logger
	status    *buildStatus
	errors    *foundationerrors.HTTPErrorAdapter
	startTime time.Time

	rebuildReq chan struct{}
	schedOpts  []gocron.SchedulerOption

	mu   sync.Mutex
	addr net.Addr
}

// New validates opts and returns a Server ready to Run.
func New(opts Options) (*Server, error) {
	if opts.Build == nil {
		return nil, foundationerrors.ValidationError("preview requires a build function").Build()
	}
	if opts.Port < 0 || opts.Port > 65535 {
		return nil, foundationerrors.ValidationError(fmt.Sprintf("port out of range: %d", opts.Port)).Build()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	src, err := filepath.Abs(opts.Src)
	if err != nil {
		return nil, foundationerrors.FileSystemError(err, "failed to resolve source directory").Build()
	}
	dest, err := filepath.Abs(opts.Dest)
	if err != nil {
		return nil, foundationerrors.FileSystemError(err, "failed to resolve destination directory").Build()
	}
	opts.Dest = dest

	return &Server{
		opts:       opts,
		src:        src,
		dest:       dest,
		logger:     opts.Logger,
		status:     &buildStatus{},
		errors:     foundationerrors.NewHTTPErrorAdapter(opts.Logger),
		startTime:  time.Now(),
		rebuildReq: make(chan struct{}, 1),
	}, nil
}

// Addr returns the listener address once Run has bound it.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run builds once, then serves and rebuilds on changes until ctx is done.
// A failing build does not stop the preview; the error is served instead.
func (s *Server) Run(ctx context.Context) error {
	s.build(ctx, "initial")

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.opts.Port))
	if err != nil {
		return foundationerrors.RuntimeError(err, "failed to listen").
			WithContext("port", s.opts.Port).
			Build()
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Preview server error", logfields.Error(err))
		}
	}()
	s.logger.Info("Preview server listening",
		logfields.Addr(ln.Addr().String()),
		slog.String("url", fmt.Sprintf("http://localhost:%d", ln.Addr().(*net.TCPAddr).Port)))

	watcher, err := s.setupFileWatcher()
	if err != nil {
		_ = httpServer.Close()
		return foundationerrors.RuntimeError(err, "failed to watch source directory").Build()
	}
	defer func() { _ = watcher.Close() }()

	trigger, stopDebounce := newDebouncer(s.opts.Debounce, func() { s.requestRebuild() })
	defer stopDebounce()

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		s.rebuildWorker(workerCtx)
	}()

	if s.opts.RebuildInterval > 0 {
		sched, err := s.startScheduler()
		if err != nil {
			stopWorker()
			<-workerDone
			_ = httpServer.Close()
			return foundationerrors.RuntimeError(err, "failed to schedule periodic rebuilds").
				WithContext("interval", s.opts.RebuildInterval.String()).
				Build()
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				s.logger.Warn("Scheduler shutdown error", logfields.Error(err))
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shutting down preview server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Warn("Preview server shutdown error", logfields.Error(err))
			}
			<-workerDone
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// requestRebuild queues a rebuild. Requests arriving while one is queued
// collapse into it, so a burst during a build yields one follow-up build.
func (s *Server) requestRebuild() {
	select {
	case s.rebuildReq <- struct{}{}:
	default:
	}
}

// rebuildWorker is the only goroutine that builds after startup.
func (s *Server) rebuildWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.rebuildReq:
			s.build(ctx, "rebuild")
		}
	}
}

func (s *Server) build(ctx context.Context, reason string) {
	start := time.Now()
	err := s.opts.Build(ctx)
	if ctx.Err() != nil {
		return
	}
	s.status.record(err)
	if err != nil {
		s.logger.Warn("Build failed", logfields.Event(reason), logfields.Error(err))
		return
	}
	s.logger.Info("Site built",
		logfields.Event(reason),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
}
