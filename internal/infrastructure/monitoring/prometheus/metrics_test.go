package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
)

func scrape(t *testing.T, c MetricsCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestNewAppMetrics_RegistersAll(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.UpstreamRequestDuration)
	assert.NotNil(t, m.BatchesTotal)
	assert.NotNil(t, m.ErrorsTotal)
}

func TestRecordHTTPRequest(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	RecordHTTPRequest(m, "POST", "/api/search-registered", 200, 120*time.Millisecond)

	body := scrape(t, c)
	assert.Contains(t, body, `unicip_test_http_requests_total{method="POST",path="/api/search-registered",status_code="200"} 1`)
}

func TestRecordUpstreamCall(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	RecordUpstreamCall(m, "registry", "rights_by_customer", "ok", 300*time.Millisecond)
	RecordUpstreamCall(m, "kipris", "biblio_detail", "not_found", 150*time.Millisecond)

	body := scrape(t, c)
	assert.Contains(t, body, `upstream="registry"`)
	assert.Contains(t, body, `outcome="not_found"`)
}

func TestRecordSearch_CountsOnlySuccessfulResults(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	RecordSearch(m, "registered", "ok", 4)
	RecordSearch(m, "registered", "error", 0)

	body := scrape(t, c)
	assert.Contains(t, body, `unicip_test_search_requests_total{outcome="error",search_type="registered"} 1`)
	assert.Contains(t, body, `unicip_test_search_result_count_count{search_type="registered"} 1`)
}

func TestRecordCacheAccess(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	RecordCacheAccess(m, "biblio", true)
	RecordCacheAccess(m, "biblio", false)
	RecordCacheAccess(m, "biblio", false)

	body := scrape(t, c)
	assert.Contains(t, body, `unicip_test_cache_hits_total{cache="biblio"} 1`)
	assert.Contains(t, body, `unicip_test_cache_misses_total{cache="biblio"} 2`)
}

func TestRecordError(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	RecordError(m, "lookup", "UPSTREAM_002")

	body := scrape(t, c)
	assert.Contains(t, body, `unicip_test_errors_total{component="lookup",error_code="UPSTREAM_002"} 1`)
}

func TestNewAppMetrics_NopLoggerCollector(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "n"}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.NotPanics(t, func() { NewAppMetrics(c) })
}
