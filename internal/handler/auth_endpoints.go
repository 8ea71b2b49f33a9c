package handler

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"studio-server/internal/models"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 32
	minPasswordLength = 8
	maxPasswordLength = 72
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request data: " + err.Error()})
		return
	}

	if len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeBadRequest,
			Message: fmt.Sprintf("Username length must be between %d and %d characters", minUsernameLength, maxUsernameLength),
		})
		return
	}
	if !usernameRegex.MatchString(req.Username) {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeBadRequest,
			Message: "Username can only contain letters, numbers, underscores, and hyphens",
		})
		return
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeBadRequest,
			Message: fmt.Sprintf("Password length must be between %d and %d characters", minPasswordLength, maxPasswordLength),
		})
		return
	}
	var hasLetter, hasDigit bool
	for _, char := range req.Password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
		if hasLetter && hasDigit {
			break
		}
	}
	if !hasLetter || !hasDigit {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeBadRequest,
			Message: "Password must contain at least one letter and one digit",
		})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID.String(),
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": meResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
		"tokens": tokens,
	})
}

func (h *Handler) logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		zap.L().Error("User ID missing in context during logout")
		handleServiceError(c, models.ErrInternalServer)
		return
	}
	accessUUID := c.GetString(contextAccessUUIDKey)
	if accessUUID == "" {
		zap.L().Error("Access UUID missing in context during logout")
		handleServiceError(c, models.ErrInternalServer)
		return
	}

	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Missing or invalid refresh_token in request body: " + err.Error()})
		return
	}

	// Only the jti is needed; the refresh token is validated by ownership in
	// the token store.
	token, _, err := new(jwt.Parser).ParseUnverified(req.RefreshToken, &models.Claims{})
	if err != nil {
		handleServiceError(c, models.ErrTokenMalformed)
		return
	}
	claims, ok := token.Claims.(*models.Claims)
	if !ok || claims.ID == "" {
		handleServiceError(c, models.ErrTokenMalformed)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID, accessUUID, claims.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	// The editing session dies with the login session.
	h.workspaces.Remove(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	refreshesTotal.Inc()
	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) getMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleServiceError(c, models.ErrInternalServer)
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, meResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
}
