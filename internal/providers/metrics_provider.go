package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"brickdeals/internal/structures"
)

// StatsSource mirrors services.StatsServiceInterface; declared locally so
// providers does not import services (services -> store -> providers would
// otherwise form an import cycle).
type StatsSource interface {
	CatalogSize() int
	DealCount() int
	SubscriberCount() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncRateLimited(endpoint string)
	IncDealsDerived(retailer string)
	IncNotificationsSent(count int)
	IncPushBatchErrors()
	IncPipelineRuns(job string, success bool)
	ObservePipelineDuration(job string, duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	rateLimited       *prometheus.CounterVec
	dealsDerived      *prometheus.CounterVec
	notificationsSent prometheus.Counter
	pushBatchErrors   prometheus.Counter
	pipelineRuns      *prometheus.CounterVec
	pipelineDuration  *prometheus.HistogramVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRateLimited(endpoint string) {
	m.rateLimited.WithLabelValues(endpoint).Inc()
}

func (m *MetricsProvider) IncDealsDerived(retailer string) {
	m.dealsDerived.WithLabelValues(retailer).Inc()
}

func (m *MetricsProvider) IncNotificationsSent(count int) {
	m.notificationsSent.Add(float64(count))
}

func (m *MetricsProvider) IncPushBatchErrors() {
	m.pushBatchErrors.Inc()
}

func (m *MetricsProvider) IncPipelineRuns(job string, success bool) {
	result := "ok"
	if !success {
		result = "error"
	}
	m.pipelineRuns.WithLabelValues(job, result).Inc()
}

func (m *MetricsProvider) ObservePipelineDuration(job string, duration time.Duration) {
	m.pipelineDuration.WithLabelValues(job).Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, stats StatsSource) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brickdeals_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "brickdeals_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brickdeals_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brickdeals_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		rateLimited: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brickdeals_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		}, []string{"endpoint"}),

		dealsDerived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brickdeals_deals_derived_total",
			Help: "Deals persisted by the derivation step",
		}, []string{"retailer"}),

		notificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brickdeals_notifications_sent_total",
			Help: "Push messages handed to the gateway",
		}),

		pushBatchErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brickdeals_push_batch_errors_total",
			Help: "Push gateway batches that failed",
		}),

		pipelineRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brickdeals_pipeline_runs_total",
			Help: "Scheduled and manual pipeline runs",
		}, []string{"job", "result"}),

		pipelineDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "brickdeals_pipeline_duration_seconds",
			Help:    "Duration of pipeline runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"job"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "brickdeals_catalog_size",
		Help: "Products currently in the catalog store",
	}, func() float64 {
		return float64(stats.CatalogSize())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "brickdeals_deals_current",
		Help: "Deal records currently persisted",
	}, func() float64 {
		return float64(stats.DealCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "brickdeals_subscribers_total",
		Help: "Registered push subscribers",
	}, func() float64 {
		return float64(stats.SubscriberCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncRateLimited(_ string)                          {}
func (n *noopMetrics) IncDealsDerived(_ string)                         {}
func (n *noopMetrics) IncNotificationsSent(_ int)                       {}
func (n *noopMetrics) IncPushBatchErrors()                              {}
func (n *noopMetrics) IncPipelineRuns(_ string, _ bool)                 {}
func (n *noopMetrics) ObservePipelineDuration(_ string, _ time.Duration) {
}
