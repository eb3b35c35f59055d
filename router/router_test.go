package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/NomadCrew/feedback-intake/config"
	"github.com/NomadCrew/feedback-intake/handlers"
	"github.com/NomadCrew/feedback-intake/logger"
	"github.com/NomadCrew/feedback-intake/middleware"
	"github.com/NomadCrew/feedback-intake/services"
	"github.com/NomadCrew/feedback-intake/templates"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func testConfig(env config.Environment) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Environment:    env,
			Port:           "8000",
			AllowedOrigins: []string{"*"},
			Version:        "test",
		},
		Form: config.FormConfig{
			PageTitle:        "Send us your feedback",
			MinMessageLength: config.DefaultMinMessageLength,
			TagOptions:       []string{"bug", "ui"},
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, metrics *middleware.Metrics) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pages, err := templates.Load()
	require.NoError(t, err)

	r, err := SetupRouter(Dependencies{
		Config:          cfg,
		HomeHandler:     handlers.NewHomeHandler(cfg.Form, pages),
		FeedbackHandler: handlers.NewFeedbackHandler(services.NewFeedbackValidator(cfg.Form.MinMessageLength)),
		HealthHandler:   handlers.NewHealthHandler(services.NewHealthService(pages, cfg.Server.Version)),
		Metrics:         metrics,
		Logger:          logger.GetLogger(),
	})
	require.NoError(t, err)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_FeedbackFlow(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvDevelopment), nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/submit"`)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	form := url.Values{
		"name":    {"Ann"},
		"email":   {"ann@example.com"},
		"message": {"short"},
		"tags":    {"bug"},
	}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Message must be at least 10 characters long."}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/submit-json",
		strings.NewReader(`{"name":"Ann","email":"ann@example.com","message":"Hello there!","tags":["bug","ui"]}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tags":["BUG","UI"]`)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvDevelopment), nil)

	for _, path := range []string{"/health", "/health/liveness", "/health/readiness"} {
		w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_SwaggerOutsideProduction(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvDevelopment), nil)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/submit-json")

	prod := newTestRouter(t, testConfig(config.EnvProduction), nil)
	w = serve(prod, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestRouter_Metrics(t *testing.T) {
	disabled := newTestRouter(t, testConfig(config.EnvDevelopment), nil)
	w := serve(disabled, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	r := newTestRouter(t, testConfig(config.EnvDevelopment), middleware.NewMetrics())
	serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "feedback_intake_http_requests_total")
}

func TestRouter_RejectsInvalidTrustedProxy(t *testing.T) {
	cfg := testConfig(config.EnvDevelopment)
	cfg.Server.TrustedProxies = []string{"not-an-ip"}

	_, err := SetupRouter(Dependencies{Config: cfg, Logger: logger.GetLogger()})
	assert.Error(t, err)
}
