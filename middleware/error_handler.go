package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/NomadCrew/feedback-intake/errors"
	"github.com/NomadCrew/feedback-intake/logger"
	"github.com/NomadCrew/feedback-intake/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error pushed with c.Error. Validation errors
// carrying field details become a 422 list body; every other error becomes a
// {"detail": "..."} body with the error's status.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appError *errors.AppError
		if stderrors.As(err, &appError) {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			if appError.Type == errors.ValidationError && len(appError.Fields) > 0 {
				c.JSON(statusCode, types.ValidationErrorResponse{Detail: appError.Fields})
				return
			}

			detail := appError.Message
			// Server error details may carry internals; only client errors expose them.
			if appError.Detail != "" && (statusCode < http.StatusInternalServerError || gin.IsDebugging()) {
				detail = appError.Detail
			}
			c.JSON(statusCode, types.HTTPErrorResponse{Detail: detail})
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")

		detail := "Internal Server Error"
		if gin.IsDebugging() {
			detail = err.Error()
		}
		c.JSON(http.StatusInternalServerError, types.HTTPErrorResponse{Detail: detail})
	}
}
