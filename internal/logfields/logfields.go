package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeySource     = "source"
	KeyLayout     = "layout"
	KeyComponent  = "component"
	KeyCount      = "count"
	KeyStatus     = "status"
	KeyAddr       = "addr"
	KeyEvent      = "event"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr        { return slog.String(KeySource, p) }
func Layout(name string) slog.Attr     { return slog.String(KeyLayout, name) }
func Component(name string) slog.Attr  { return slog.String(KeyComponent, name) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Status(s string) slog.Attr        { return slog.String(KeyStatus, s) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func Event(e string) slog.Attr         { return slog.String(KeyEvent, e) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
