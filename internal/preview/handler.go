package preview

import (
	"encoding/json"
	"net/http"
	"time"

	"git.home.luguber.info/inful/rovr/internal/logfields"
	"git.home.luguber.info/inful/rovr/internal/metrics"
	"git.home.luguber.info/inful/rovr/internal/version"
)

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Builds    int    `json:"builds"`
	LastError string `json:"last_error,omitempty"`
}

// Handler returns the preview HTTP handler: the destination directory as
// static files, /healthz and, when enabled, /metrics. While the latest build
// is failing, site requests get the classified build error instead of stale
// output.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.opts.Metrics {
		mux.Handle("/metrics", metrics.HTTPHandler(s.opts.Registry))
	}

	files := http.FileServer(http.Dir(s.opts.Dest))
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastErr, _, _ := s.status.get(); lastErr != nil {
			s.errors.WriteErrorResponse(w, r, lastErr)
			return
		}
		files.ServeHTTP(w, r)
	}))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	lastErr, builds, _ := s.status.get()
	resp := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Uptime:  time.Since(s.startTime).Truncate(time.Second).String(),
		Builds:  builds,
	}
	if lastErr != nil {
		resp.Status = "degraded"
		resp.LastError = lastErr.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Failed to write health response", logfields.Error(err))
	}
}
