package preview

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/rovr/internal/logfields"
)

// setupFileWatcher watches every directory under src except dest and hidden
// directories.
func (s *Server) setupFileWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := s.addDirsRecursive(watcher, s.src); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

func (s *Server) addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != s.src && (s.underDest(p) || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			s.logger.Warn("Watch add failed", logfields.Path(p), logfields.Error(err))
		}
		return nil
	})
}

// handleFileEvent triggers a rebuild for relevant events and starts watching
// newly created directories.
func (s *Server) handleFileEvent(w *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if s.shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = s.addDirsRecursive(w, ev.Name)
		}
	}
	s.logger.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	trigger()
}

// shouldIgnoreEvent returns true for events that must not trigger a rebuild:
// anything in the destination, hidden files and editor temporaries.
func (s *Server) shouldIgnoreEvent(p string) bool {
	if s.underDest(p) {
		return true
	}
	base := filepath.Base(p)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}

func (s *Server) underDest(p string) bool {
	rel, err := filepath.Rel(s.dest, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// newDebouncer returns a trigger that calls fire once delay has passed
// without another trigger.
func newDebouncer(delay time.Duration, fire func()) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, fire)
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}
