package preview

import (
	"sync"
	"time"
)

// buildStatus tracks the outcome of the most recent build for the HTTP handlers.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastBuild    time.Time
	builds       int
	hasGoodBuild bool
}

func (bs *buildStatus) record(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
	bs.lastBuild = time.Now()
	bs.builds++
	if err == nil {
		bs.hasGoodBuild = true
	}
}

func (bs *buildStatus) get() (lastErr error, builds int, hasGoodBuild bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.builds, bs.hasGoodBuild
}
