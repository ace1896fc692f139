package prometheus

import (
	"fmt"
	"time"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP Layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Upstream Layer (KIPO registry + KIPRIS Plus)
	UpstreamRequestsTotal   CounterVec
	UpstreamRequestDuration HistogramVec

	// Lookup Layer
	SearchRequestsTotal   CounterVec
	SearchResultCount     HistogramVec
	DetailLookupsTotal    CounterVec
	BatchesTotal          CounterVec
	BatchDuration         HistogramVec
	BulkRequestRecordSize HistogramVec

	// Cache Layer
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// Export Layer
	ExportsTotal   CounterVec
	ExportDuration HistogramVec

	// System Health
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultUpstreamDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20}
	DefaultBatchDurationBuckets    = []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60}
	DefaultResultCountBuckets      = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500}
)

// NewAppMetrics registers all metrics and returns the AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	// Upstream
	m.UpstreamRequestsTotal = collector.RegisterCounter("upstream_requests_total", "Upstream API requests", "upstream", "operation", "outcome")
	m.UpstreamRequestDuration = collector.RegisterHistogram("upstream_request_duration_seconds", "Upstream API request duration", DefaultUpstreamDurationBuckets, "upstream", "operation")

	// Lookup
	m.SearchRequestsTotal = collector.RegisterCounter("search_requests_total", "Patent search requests", "search_type", "outcome")
	m.SearchResultCount = collector.RegisterHistogram("search_result_count", "Records returned per search", DefaultResultCountBuckets, "search_type")
	m.DetailLookupsTotal = collector.RegisterCounter("detail_lookups_total", "Per-record detail lookups", "outcome")
	m.BatchesTotal = collector.RegisterCounter("lookup_batches_total", "Bulk lookup batches executed")
	m.BatchDuration = collector.RegisterHistogram("lookup_batch_duration_seconds", "Duration of one bulk lookup batch", DefaultBatchDurationBuckets)
	m.BulkRequestRecordSize = collector.RegisterHistogram("bulk_request_record_count", "Records per bulk lookup request", DefaultResultCountBuckets)

	// Cache
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	// Export
	m.ExportsTotal = collector.RegisterCounter("exports_total", "Excel exports generated", "sheet_type", "outcome")
	m.ExportDuration = collector.RegisterHistogram("export_duration_seconds", "Excel export generation duration", DefaultHTTPDurationBuckets, "sheet_type")

	// System Health
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_code")

	return m
}

// Helpers

func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	status := fmt.Sprintf("%d", statusCode)
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordUpstreamCall records one call against a government API.
// outcome is "ok", "not_found", or "error".
func RecordUpstreamCall(metrics *AppMetrics, upstream, operation, outcome string, duration time.Duration) {
	if metrics == nil {
		return
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(upstream, operation, outcome).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(upstream, operation).Observe(duration.Seconds())
}

func RecordSearch(metrics *AppMetrics, searchType, outcome string, resultCount int) {
	if metrics == nil {
		return
	}
	metrics.SearchRequestsTotal.WithLabelValues(searchType, outcome).Inc()
	if outcome == "ok" {
		metrics.SearchResultCount.WithLabelValues(searchType).Observe(float64(resultCount))
	}
}

func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if metrics == nil {
		return
	}
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordError(metrics *AppMetrics, component, errorCode string) {
	if metrics == nil {
		return
	}
	metrics.ErrorsTotal.WithLabelValues(component, errorCode).Inc()
}
