package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveProviderCall(t *testing.T) {
	t.Parallel()
	m := NewMetrics("calllinks", "calls")
	m.ObserveProviderCall(OutcomeCreated)
	m.ObserveProviderCall(OutcomeRejected)
	m.ObserveProviderCall(OutcomeCreated)

	if got := testutil.ToFloat64(m.CallsCreated); got != 2 {
		t.Fatalf("expected 2 calls created got %v", got)
	}
	if got := testutil.ToFloat64(m.ProviderCalls.WithLabelValues(OutcomeRejected)); got != 1 {
		t.Fatalf("expected 1 rejected call got %v", got)
	}
}

func TestHandlerExposesRequests(t *testing.T) {
	t.Parallel()
	m := NewMetrics("calllinks", "calls")
	m.ObserveRequest(http.MethodPost, "/api/create-call", http.StatusOK, 15*time.Millisecond)

	res := httptest.NewRecorder()
	m.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}
	want := `calllinks_http_requests_total{method="POST",route="/api/create-call",service="calls",status="200"} 1`
	if !strings.Contains(res.Body.String(), want) {
		t.Fatalf("metrics output missing %q:\n%s", want, res.Body.String())
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()
	var m *Metrics
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveProviderCall(OutcomeFailed)
}
