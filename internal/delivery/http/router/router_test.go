package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/delivery/http/handler"
	"github.com/user/zameen-scraper/internal/delivery/http/response"
	"github.com/user/zameen-scraper/pkg/metrics"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	metrics.Init()
	h := handler.NewHandler("run-42", time.Now().Add(-time.Minute), zap.NewNop())
	return New(h, zap.NewNop())
}

func TestHealthCheck(t *testing.T) {
	srv := newTestRouter(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body response.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "run-42", body.RunID)
	assert.GreaterOrEqual(t, body.UptimeSec, int64(59))
}

func TestMetricsEndpointExposesScraperCollectors(t *testing.T) {
	srv := newTestRouter(t)
	metrics.PagesFetchedTotal.WithLabelValues("Lahore", "listings").Inc()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `scraper_pages_fetched_total{city="Lahore",outcome="listings"}`)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestRouter(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/crawl", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
