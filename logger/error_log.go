package logger

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogError logs an error with contextual information. Requests carried by a
// gin.Context contribute their request id, path, method and client address.
func LogError(ctx context.Context, err error, message string, metadata map[string]interface{}) {
	logWithLevel(ctx, zapcore.ErrorLevel, err, message, metadata)
}

// LogHTTPError logs a failed request. Client errors (4xx) are logged at warn
// level without a stack trace; everything else is logged as an error.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	metadata := map[string]interface{}{
		"status_code": statusCode,
		"headers":     filterSensitiveHeaders(c.Request.Header),
	}

	level := zapcore.ErrorLevel
	if statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError {
		level = zapcore.WarnLevel
	}
	logWithLevel(c, level, err, message, metadata)
}

func logWithLevel(ctx context.Context, level zapcore.Level, err error, message string, metadata map[string]interface{}) {
	fields := []zap.Field{zap.Error(err)}
	if err != nil {
		fields = append(fields, zap.String("error_type", fmt.Sprintf("%T", err)))
	}

	if ginCtx, ok := ctx.(*gin.Context); ok && ginCtx.Request != nil {
		if requestID := ginCtx.GetString("request_id"); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		fields = append(fields,
			zap.String("path", ginCtx.Request.URL.Path),
			zap.String("method", ginCtx.Request.Method),
			zap.String("ip_address", ginCtx.ClientIP()),
		)
	}

	if level >= zapcore.ErrorLevel && !IsProduction() {
		fields = append(fields, zap.String("stack_trace", getStackTrace(3)))
	}

	for k, v := range metadata {
		fields = append(fields, zap.Any(k, v))
	}

	if ce := GetLogger().Desugar().Check(level, message); ce != nil {
		ce.Write(fields...)
	}
}

// getStackTrace captures a stack trace starting from the specified skip level
func getStackTrace(skip int) string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "runtime.") {
			builder.WriteString(frame.Function)
			builder.WriteString("\n\t")
			builder.WriteString(frame.File)
			builder.WriteString(":")
			builder.WriteString(strconv.Itoa(frame.Line))
			builder.WriteString("\n")
		}
		if !more {
			break
		}
	}

	return builder.String()
}

// filterSensitiveHeaders redacts credentials before headers are logged.
func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string)

	for name, values := range headers {
		lower := strings.ToLower(name)
		if strings.EqualFold(name, "Authorization") ||
			strings.EqualFold(name, "Cookie") ||
			strings.Contains(lower, "token") ||
			strings.Contains(lower, "key") ||
			strings.Contains(lower, "secret") {
			filtered[name] = "[REDACTED]"
			continue
		}

		if len(values) > 0 {
			filtered[name] = values[0]
		}
	}

	return filtered
}
