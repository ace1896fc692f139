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

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "unicip_test"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestRegisterCounter_AndServe(t *testing.T) {
	c := newTestCollector(t)

	vec := c.RegisterCounter("requests_total", "test counter", "outcome")
	vec.WithLabelValues("ok").Inc()
	vec.WithLabelValues("ok").Add(2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `unicip_test_requests_total{outcome="ok"} 3`)
}

func TestRegister_IdempotentForSameName(t *testing.T) {
	c := newTestCollector(t)

	first := c.RegisterCounter("dup_total", "dup", "l")
	second := c.RegisterCounter("dup_total", "dup", "l")

	first.WithLabelValues("a").Inc()
	second.WithLabelValues("a").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `unicip_test_dup_total{l="a"} 2`)
}

func TestRegisterHistogram_DefaultBuckets(t *testing.T) {
	c := newTestCollector(t)

	vec := c.RegisterHistogram("op_duration_seconds", "test histogram", nil, "op")
	vec.WithLabelValues("search").Observe(0.2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "unicip_test_op_duration_seconds_bucket")
}

func TestRegisterGauge(t *testing.T) {
	c := newTestCollector(t)

	vec := c.RegisterGauge("active", "test gauge", "component")
	g := vec.WithLabelValues("batcher")
	g.Inc()
	g.Add(4)
	g.Dec()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `unicip_test_active{component="batcher"} 4`)
}

func TestTimer(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterHistogram("timer_seconds", "timer test", nil)

	timer := NewTimer(vec.WithLabelValues())
	time.Sleep(time.Millisecond)
	timer.ObserveDuration()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "unicip_test_timer_seconds_count 1")
}

func TestTimer_NilHistogramSafe(t *testing.T) {
	timer := &Timer{start: time.Now()}
	assert.NotPanics(t, timer.ObserveDuration)
}
