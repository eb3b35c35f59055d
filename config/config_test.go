package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NomadCrew/feedback-intake/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func init() {
	logger.IsTest = true
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DefaultMinMessageLength, cfg.Form.MinMessageLength)
	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,https://example.com")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("FORM_PAGE_TITLE", "Tell us")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "Tell us", cfg.Form.PageTitle)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "unknown environment",
			envVars: map[string]string{"SERVER_ENVIRONMENT": "staging"},
		},
		{
			name:    "non-positive message length",
			envVars: map[string]string{"MIN_MESSAGE_LENGTH": "0"},
		},
		{
			name:    "malformed origin",
			envVars: map[string]string{"ALLOWED_ORIGINS": "not a url"},
		},
		{
			name:    "unknown log level",
			envVars: map[string]string{"LOG_LEVEL": "loud"},
		},
		{
			name:    "non-positive shutdown timeout",
			envVars: map[string]string{"SERVER_SHUTDOWN_TIMEOUT_SECONDS": "-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.yaml")
	content := "server:\n  port: \"7000\"\nform:\n  page_title: From file\n  tag_options:\n    - praise\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "From file", cfg.Form.PageTitle)
	assert.Equal(t, []string{"praise"}, cfg.Form.TagOptions)
	assert.Equal(t, DefaultMinMessageLength, cfg.Form.MinMessageLength)
}

func TestLoadConfig_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_FileDrivesLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.yaml")
	content := "server:\n  environment: production\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Cleanup(func() {
		require.NoError(t, logger.Configure("info", false))
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)

	require.NoError(t, logger.Configure(cfg.LogLevel, cfg.IsProduction()))
	assert.Equal(t, zapcore.DebugLevel, logger.Level())
	assert.True(t, logger.IsProduction())
}
