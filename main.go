package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NomadCrew/feedback-intake/config"
	"github.com/NomadCrew/feedback-intake/handlers"
	"github.com/NomadCrew/feedback-intake/logger"
	"github.com/NomadCrew/feedback-intake/middleware"
	"github.com/NomadCrew/feedback-intake/router"
	"github.com/NomadCrew/feedback-intake/services"
	"github.com/NomadCrew/feedback-intake/templates"
	"github.com/gin-gonic/gin"
)

// @title        Feedback Intake API
// @version      1.0
// @description  Collects user feedback from an HTML form and a JSON endpoint.
// @BasePath     /
func main() {
	os.Exit(run())
}

func run() int {
	// Initialize logger
	logger.InitLogger()
	defer logger.Close()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.LogError(ctx, err, "Failed to load config", nil)
		return 1
	}

	if err := logger.Configure(cfg.LogLevel, cfg.IsProduction()); err != nil {
		logger.LogError(ctx, err, "Failed to configure logger", map[string]interface{}{"log_level": cfg.LogLevel})
		return 1
	}
	log := logger.GetLogger()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	pages, err := templates.Load()
	if err != nil {
		logger.LogError(ctx, err, "Failed to parse templates", nil)
		return 1
	}

	// Services
	validator := services.NewFeedbackValidator(cfg.Form.MinMessageLength)
	healthService := services.NewHealthService(pages, cfg.Server.Version)

	var metrics *middleware.Metrics
	if cfg.Metrics.Enabled {
		metrics = middleware.NewMetrics()
	}

	r, err := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		HomeHandler:     handlers.NewHomeHandler(cfg.Form, pages),
		FeedbackHandler: handlers.NewFeedbackHandler(validator),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		Metrics:         metrics,
		Logger:          log,
	})
	if err != nil {
		logger.LogError(ctx, err, "Failed to set up router", map[string]interface{}{"trusted_proxies": cfg.Server.TrustedProxies})
		return 1
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.LogError(ctx, err, "Failed to start server", map[string]interface{}{"port": cfg.Server.Port})
			return 1
		}
	case <-sigCtx.Done():
	}
	stop()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx,
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.LogError(shutdownCtx, err, "Server forced to shutdown",
			map[string]interface{}{"timeout_seconds": cfg.Server.ShutdownTimeoutSeconds})
		return 1
	}
	log.Info("Server exited")
	return 0
}
