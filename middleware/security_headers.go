package middleware

import (
	"github.com/NomadCrew/feedback-intake/config"
	"github.com/gin-gonic/gin"
)

// contentSecurityPolicy allows the form page's inline styles and restricts
// form posts to this origin.
const contentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'"

// SecurityHeadersMiddleware adds security-related HTTP headers to all responses.
func SecurityHeadersMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Swagger UI relies on inline scripts and is only mounted outside
		// production, so the policy and HSTS are production-only.
		if cfg.IsProduction() {
			c.Header("Content-Security-Policy", contentSecurityPolicy)
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
