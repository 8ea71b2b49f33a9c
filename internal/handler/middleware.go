package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"studio-server/internal/models"
)

const (
	contextUserIDKey     = "user_id"
	contextAccessUUIDKey = "access_uuid"
)

// AuthMiddleware verifies the bearer access token and stores the caller's
// identity in the request context.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			zap.L().Warn("Authorization header missing")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			zap.L().Warn("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		claims, err := h.authService.VerifyAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			zap.L().Warn("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextAccessUUIDKey, claims.ID)
		c.Next()
	}
}

// currentUserID reads the authenticated user's ID from the request context.
// It is only valid behind AuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(contextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := raw.(uuid.UUID)
	return userID, ok
}
