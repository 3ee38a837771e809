package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes. Storage and unknown
// errors are 500s whose detail is not exposed to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the mapped status. action completes the
// sentence "Failed to ..." for 500 responses.
func respondError(c *gin.Context, action string, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Failed to " + action})
	case http.StatusUnauthorized:
		logger.Warn("Unauthorized attempt to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Unauthorized"})
	default:
		logger.Warn("Rejected request to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// bindJSON binds the body into req, writing a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// bindQuery binds query parameters into params, writing a 400 on failure.
func bindQuery(c *gin.Context, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return false
	}
	return true
}

// projectID returns the project the session token was checked against.
func projectID(c *gin.Context) string {
	if id, ok := middleware.GetProjectIDFromContext(c); ok {
		return id
	}
	return c.Param("projectID")
}
