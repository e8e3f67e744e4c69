package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	middleware, err := HTTPMetricsMiddleware(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware)
	router.GET("/v1/event-access/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/v1/event-access/evt_ac::a", "/v1/event-access/evt_ac::b", "/health", "/nope"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	output := scrape(t, provider)

	assertMetricLine(t, output, `test_app_http_requests_total`,
		`method="GET".*path="/v1/event-access/:id".*status_code="200"`, `2`)
	assertMetricLine(t, output, `test_app_http_requests_total`,
		`path="unknown".*status_code="404"`, `1`)
	assert.NotContains(t, output, `path="/health"`)
	assert.NotContains(t, output, "evt_ac::a")
}

func TestRoutePattern(t *testing.T) {
	assert.Equal(t, "/v1/event-access/:id", routePattern("/v1/event-access/:id"))
	assert.Equal(t, "unknown", routePattern(""))
	assert.Equal(t, "/", routePattern("/"))
}
