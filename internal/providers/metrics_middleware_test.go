package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingMetrics struct {
	noopMetrics
	endpoint  string
	status    int
	durations int
}

func (m *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.endpoint = endpoint
	m.status = status
}

func (m *recordingMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.durations++
}

func TestMetricsMiddleware_RecordsStatusAndDuration(t *testing.T) {
	metrics := &recordingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deals", nil))

	assert.Equal(t, "/deals", metrics.endpoint)
	assert.Equal(t, http.StatusNotFound, metrics.status)
	assert.Equal(t, 1, metrics.durations)
}

func TestMetricsMiddleware_DefaultsTo200(t *testing.T) {
	metrics := &recordingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))

	assert.Equal(t, http.StatusOK, metrics.status)
}
