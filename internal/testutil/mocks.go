package testutil

import (
	"sync"
	"time"

	"brickdeals/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountLevel returns how many entries were logged at the given level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                sync.Mutex
	Requests          int
	RateLimited       int
	DealsDerived      int
	NotificationsSent int
	PushBatchErrors   int
	PipelineRuns      map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) IncRateLimited(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateLimited++
}
func (m *MockMetrics) IncDealsDerived(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DealsDerived++
}
func (m *MockMetrics) IncNotificationsSent(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsSent += count
}
func (m *MockMetrics) IncPushBatchErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PushBatchErrors++
}
func (m *MockMetrics) IncPipelineRuns(job string, _ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PipelineRuns == nil {
		m.PipelineRuns = make(map[string]int)
	}
	m.PipelineRuns[job]++
}
func (m *MockMetrics) ObservePipelineDuration(_ string, _ time.Duration) {}

// MockCompressor passes data through unchanged.
type MockCompressor struct{}

func (m *MockCompressor) Compress(val []byte) ([]byte, error)   { return val, nil }
func (m *MockCompressor) Decompress(val []byte) ([]byte, error) { return val, nil }
func (m *MockCompressor) Close()                                {}

// MockPushClient has moved to brickdeals/internal/testutil/pushmock; it
// depends on notify, which (via store) depends on providers, and keeping
// it here made store's tests a cycle.
