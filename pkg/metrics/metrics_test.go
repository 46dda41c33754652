package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/fiscal/pkg/metrics"
)

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.InvoiceProcessed("issued")
	m.GatewayCall("submit", "ok", 120*time.Millisecond)
	m.BatchProcessed("batch", 10)
	m.BreakerStateChanged("open")
	m.JobFinished("retry failed invoices", time.Second, errors.New("boom"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `fiscal_invoices_total{outcome="issued"} 1`)
	require.Contains(t, string(body), `fiscal_gateway_call_duration_seconds_count{operation="submit",outcome="ok"} 1`)
	require.Contains(t, string(body), `fiscal_gateway_breaker_state_changes_total{to="open"} 1`)
	require.Contains(t, string(body), `fiscal_job_run_duration_seconds_count{job="retry failed invoices",outcome="failed"} 1`)
}
