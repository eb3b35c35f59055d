package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.POST("/submit", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("POST", "/submit", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", unmatchedRoute, "404")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "feedback_intake_http_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
