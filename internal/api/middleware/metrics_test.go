package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/airhost/ops/internal/api/metrics"
)

func TestMetrics_RecordsRenderedStatus(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/probe/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/probe/:id", "418")
	before := counterValue(t, counter)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe/7", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	if got := counterValue(t, counter); got != before+1 {
		t.Fatalf("expected counter to grow by one, got %v -> %v", before, got)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}
