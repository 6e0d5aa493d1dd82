package gin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RigelNana/arkstudy/services/admin-service/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testService = "middleware-test"

func newEngine(inFlight *float64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware(testService, WithSkipPaths("/health")))
	r.GET("/items/:id", func(c *gin.Context) {
		*inFlight = testutil.ToFloat64(metrics.RequestsInFlight.WithLabelValues(testService))
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func requests(method, status string) float64 {
	return testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(testService, method, status))
}

func TestPrometheusMiddlewareUsesRouteTemplate(t *testing.T) {
	var inFlight float64
	r := newEngine(&inFlight)
	before := requests("GET /items/:id", "200")

	for _, path := range []string{"/items/1", "/items/2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, before+2, requests("GET /items/:id", "200"))
	assert.Equal(t, float64(1), inFlight)
	assert.Zero(t, testutil.ToFloat64(metrics.RequestsInFlight.WithLabelValues(testService)))
}

func TestPrometheusMiddlewareUnmatchedAndSkipped(t *testing.T) {
	var inFlight float64
	r := newEngine(&inFlight)
	unmatched := requests("GET "+UnmatchedRoute, "404")
	health := requests("GET /health", "200")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, unmatched+1, requests("GET "+UnmatchedRoute, "404"))
	assert.Equal(t, health, requests("GET /health", "200"))
}
