package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ItemsFetched       int64
	DuplicatesFiltered int64
	ContentCompleted   int64
	SummarizeOK        int64
	SummarizeFailed    int64
	ClassifyOK         int64
	ClassifyFailed     int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddItemsFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsFetched += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementContentCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ContentCompleted++
}

func (m *Metrics) RecordSummarize(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.SummarizeOK++
	} else {
		m.SummarizeFailed++
	}
}

func (m *Metrics) RecordClassify(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.ClassifyOK++
	} else {
		m.ClassifyFailed++
	}
}

// SetLastRun records a finished run. Health is only restored when no
// error was recorded since the run started; a run that completed
// despite a SetError stays unhealthy until a clean one follows.
func (m *Metrics) SetLastRun(started time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.LastRunDuration = time.Since(started)
	if m.LastErrorTime.Before(started) {
		m.IsHealthy = true
	}
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"items_fetched":        m.ItemsFetched,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"content_completed":    m.ContentCompleted,
		"summarize_ok":         m.SummarizeOK,
		"summarize_failed":     m.SummarizeFailed,
		"classify_ok":          m.ClassifyOK,
		"classify_failed":      m.ClassifyFailed,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
