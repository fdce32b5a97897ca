package metrics

import (
	"io"
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

	m.ObserveHTTP("GET", "/patients/{patientID}/timeline", 200, 15*time.Millisecond)
	m.ObserveHTTP("GET", "/patients/{patientID}/timeline", 200, 5*time.Millisecond)
	m.TimelineSource("vitals", "unavailable")
	m.GrantOp("create", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/patients/{patientID}/timeline", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.timelineSources.WithLabelValues("vitals", "unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.grantOps.WithLabelValues("create", "ok")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "", 404, time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, _ := io.ReadAll(rr.Body)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestNew_Twice(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}
