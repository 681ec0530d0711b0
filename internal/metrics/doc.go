// Package metrics records build and rendering metrics.
//
// Components receive a Recorder through their constructors and default to
// NoopRecorder, so no caller needs nil checks:
//
//	svc := site.NewService(logger) // records nothing
//	svc = svc.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The preview server registers a PrometheusRecorder on its own registry and
// exposes it on /metrics through HTTPHandler.
package metrics
