// Package logger owns the process-wide zap logger. It starts from the
// LOG_LEVEL and SERVER_ENVIRONMENT variables so configuration loading can log,
// and Configure then applies the loaded configuration.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu         sync.RWMutex
	logger     *zap.SugaredLogger
	production bool
	level      = zap.NewAtomicLevel()
	once       sync.Once
)

// IsTest should be set to true when running in a test environment so that
// output goes to stdout with the development encoder.
var IsTest bool

func build(prod bool) (*zap.Logger, error) {
	var cfg zap.Config
	switch {
	case IsTest:
		cfg = zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stdout"}
	case prod:
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	return cfg.Build()
}

func initLoggerInternal() {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		lvl = zapcore.InfoLevel
	}
	level.SetLevel(lvl)

	prod := os.Getenv("SERVER_ENVIRONMENT") == "production"
	zapLogger, err := build(prod)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	mu.Lock()
	logger = zapLogger.Sugar()
	production = prod
	mu.Unlock()
}

// InitLogger initializes the global logger instance. Safe for concurrent calls.
func InitLogger() {
	once.Do(initLoggerInternal)
}

// Configure applies the level and environment from the loaded configuration.
// The level changes in place; switching environment rebuilds the logger, so
// callers should fetch GetLogger again afterwards.
func Configure(levelName string, prod bool) error {
	once.Do(initLoggerInternal)

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	level.SetLevel(lvl)

	mu.Lock()
	defer mu.Unlock()
	if prod == production {
		return nil
	}

	zapLogger, err := build(prod)
	if err != nil {
		return fmt.Errorf("failed to rebuild logger: %w", err)
	}
	_ = logger.Sync()
	logger = zapLogger.Sugar()
	production = prod
	return nil
}

// GetLogger returns the shared global zap.SugaredLogger instance,
// initializing it on first use.
func GetLogger() *zap.SugaredLogger {
	once.Do(initLoggerInternal)
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Level reports the level currently in effect.
func Level() zapcore.Level {
	return level.Level()
}

// IsProduction reports whether the logger runs with the production encoder.
func IsProduction() bool {
	once.Do(initLoggerInternal)
	mu.RLock()
	defer mu.RUnlock()
	return production
}

// Close syncs the global logger to flush any buffered log entries.
func Close() error {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil || IsTest {
		return nil
	}
	if err := l.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "Error syncing logger: %v\n", err)
		return err
	}
	return nil
}

// MaskSensitiveString keeps the first prefixLen and last suffixLen characters
// of s and elides the rest. Strings too short to mask that way are starred out.
func MaskSensitiveString(s string, prefixLen, suffixLen int) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	if len(runes) < prefixLen+suffixLen+3 {
		return strings.Repeat("*", len(runes))
	}

	return string(runes[:prefixLen]) + "..." + string(runes[len(runes)-suffixLen:])
}

// MaskEmail masks the local part of an email address and keeps the domain.
// Submitted addresses are not validated on every path, so anything without
// exactly one "@" is masked as an opaque string.
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return MaskSensitiveString(email, 2, 2)
	}

	return MaskSensitiveString(local, 2, 1) + "@" + domain
}
