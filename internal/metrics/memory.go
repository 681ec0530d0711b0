package metrics

import (
	"sync"
	"time"
)

// MemoryRecorder keeps counts in memory. It backs build summaries and tests.
type MemoryRecorder struct {
	mu             sync.Mutex
	stageDurations map[string]time.Duration
	stageResults   map[string]map[ResultLabel]int
	buildDurations []time.Duration
	buildOutcomes  map[BuildOutcomeLabel]int
	files          map[FileDisposition]int
	passes         []int
}

// NewMemoryRecorder returns an empty MemoryRecorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		stageDurations: map[string]time.Duration{},
		stageResults:   map[string]map[ResultLabel]int{},
		buildOutcomes:  map[BuildOutcomeLabel]int{},
		files:          map[FileDisposition]int{},
	}
}

func (m *MemoryRecorder) ObserveStageDuration(stage string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stageDurations[stage] += d
}

func (m *MemoryRecorder) ObserveBuildDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildDurations = append(m.buildDurations, d)
}

func (m *MemoryRecorder) IncStageResult(stage string, result ResultLabel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.stageResults[stage]
	if !ok {
		r = map[ResultLabel]int{}
		m.stageResults[stage] = r
	}
	r[result]++
}

func (m *MemoryRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildOutcomes[outcome]++
}

func (m *MemoryRecorder) AddFiles(d FileDisposition, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[d] += n
}

func (m *MemoryRecorder) ObserveExpansionPasses(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passes = append(m.passes, n)
}

// StageTotal returns the accumulated duration of stage.
func (m *MemoryRecorder) StageTotal(stage string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stageDurations[stage]
}

// Stages returns the names of every stage observed.
func (m *MemoryRecorder) Stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.stageDurations))
	for s := range m.stageDurations {
		out = append(out, s)
	}
	return out
}

// StageResults returns how often stage finished with result.
func (m *MemoryRecorder) StageResults(stage string, result ResultLabel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stageResults[stage][result]
}

// BuildOutcomes returns how many builds ended with outcome.
func (m *MemoryRecorder) BuildOutcomes(outcome BuildOutcomeLabel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buildOutcomes[outcome]
}

// Files returns the number of files recorded with disposition.
func (m *MemoryRecorder) Files(d FileDisposition) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[d]
}

// ExpansionPasses returns the recorded pass counts in order.
func (m *MemoryRecorder) ExpansionPasses() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.passes...)
}
