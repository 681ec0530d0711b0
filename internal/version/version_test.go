package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	prevVersion, prevCommit, prevTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = prevVersion, prevCommit, prevTime })

	Version, GitCommit, BuildTime = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"
	assert.Equal(t, "rovr v1.2.3 (commit abc123, built 2026-01-02T03:04:05Z)", String())
}

func TestDefaultsAreSet(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}
