package middleware

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey and userRoleKey store the authenticated identity in the request context.
const (
	userIDKey   = contextKey("userID")
	userRoleKey = contextKey("userRole")
)

// WithActor returns a copy of ctx carrying the authenticated actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, userIDKey, actor.UserID)
	return context.WithValue(ctx, userRoleKey, actor.Role)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetActorFromContext retrieves the authenticated user ID and role.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	role, ok := c.Request.Context().Value(userRoleKey).(domain.Role)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Role: role}, true
}
