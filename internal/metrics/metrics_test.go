package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/jobs/all", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/jobs/all", http.StatusOK, 20*time.Millisecond)
	m.ApplicationSubmitted()
	m.PaymentVerified("user", "success")
	m.JobsExpired(3)
	m.JobsExpired(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/jobs/all", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.applications))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payments.WithLabelValues("user", "success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.expiredJobs))
}

func TestMetrics_HandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ApplicationSubmitted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vacancy_applications_submitted_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
