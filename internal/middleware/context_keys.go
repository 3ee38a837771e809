package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys stored in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	projectIDCtxKey = contextKey("projectID")
)

// GetProjectIDFromContext retrieves the project the session token was issued for.
func GetProjectIDFromContext(c *gin.Context) (string, bool) {
	projectID, ok := c.Request.Context().Value(projectIDCtxKey).(string)
	return projectID, ok && projectID != ""
}

// WithProjectID stores the authenticated project ID in ctx.
func WithProjectID(ctx context.Context, projectID string) context.Context {
	return context.WithValue(ctx, projectIDCtxKey, projectID)
}
