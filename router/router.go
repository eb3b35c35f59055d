package router

import (
	"github.com/NomadCrew/feedback-intake/config"
	_ "github.com/NomadCrew/feedback-intake/docs" // registers the swagger spec
	"github.com/NomadCrew/feedback-intake/handlers"
	"github.com/NomadCrew/feedback-intake/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	HomeHandler     *handlers.HomeHandler
	FeedbackHandler *handlers.FeedbackHandler
	HealthHandler   *handlers.HealthHandler
	// Metrics is nil when the prometheus endpoint is disabled.
	Metrics *middleware.Metrics
	Logger  *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	r := gin.New()

	// An empty list disables X-Forwarded-For handling entirely.
	if err := r.SetTrustedProxies(deps.Config.Server.TrustedProxies); err != nil {
		return nil, err
	}

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.AccessLog(deps.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	// Feedback intake
	r.GET("/", deps.HomeHandler.Index)
	r.POST("/submit", deps.FeedbackHandler.SubmitForm)
	r.POST("/submit-json", deps.FeedbackHandler.SubmitJSON)

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Swagger documentation (only in non-production)
	if !deps.Config.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}
