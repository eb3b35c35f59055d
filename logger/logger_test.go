package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestMain(m *testing.M) {
	IsTest = true
	m.Run()
}

func TestMaskSensitiveString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		prefix   int
		suffix   int
		expected string
	}{
		{"empty", "", 2, 2, ""},
		{"short string fully masked", "abc", 2, 2, "***"},
		{"long string", "abcdefghij", 2, 2, "ab...ij"},
		{"multibyte characters kept whole", "Ångströmer", 2, 2, "Ån...er"},
		{"short multibyte string", "Zoë", 2, 2, "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked := MaskSensitiveString(tt.input, tt.prefix, tt.suffix)
			assert.Equal(t, tt.expected, masked)
			assert.True(t, utf8.ValidString(masked))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "", MaskEmail(""))
	assert.Equal(t, "an...e@example.com", MaskEmail("annmarie@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("ann@example.com"))
	// Not an address: masked as an opaque string.
	assert.Equal(t, "no...il", MaskEmail("not-an-email"))
	assert.Equal(t, "Jö...n@example.com", MaskEmail("Jörgen@example.com"))
}

func TestFilterSensitiveHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer abc")
	headers.Set("X-Api-Key", "k")
	headers.Set("Content-Type", "application/json")

	filtered := filterSensitiveHeaders(headers)
	assert.Equal(t, "[REDACTED]", filtered["Authorization"])
	assert.Equal(t, "[REDACTED]", filtered["X-Api-Key"])
	assert.Equal(t, "application/json", filtered["Content-Type"])
}

func TestLogHTTPErrorDoesNotPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/submit", nil)
	c.Set("request_id", "req-1")

	assert.NotPanics(t, func() {
		LogHTTPError(c, errors.New("boom"), http.StatusBadRequest, "client error")
		LogHTTPError(c, errors.New("boom"), http.StatusInternalServerError, "server error")
	})
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, Configure("info", false))
	})

	require.NoError(t, Configure("debug", false))
	assert.Equal(t, zapcore.DebugLevel, Level())
	assert.True(t, GetLogger().Desugar().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Configure("warn", true))
	assert.True(t, IsProduction())
	assert.False(t, GetLogger().Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, GetLogger().Desugar().Core().Enabled(zapcore.WarnLevel))

	assert.Error(t, Configure("loud", false))
	assert.Equal(t, zapcore.WarnLevel, Level())
}

func TestLogErrorOutsideRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(context.Background(), errors.New("listen tcp :8000: address already in use"), "Failed to start server",
			map[string]interface{}{"port": "8000"})
	})
}
