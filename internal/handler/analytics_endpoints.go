package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studio-server/internal/models"
)

func (h *Handler) getAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleServiceError(c, models.ErrInternalServer)
		return
	}
	data, err := h.analyticsService.GetAnalytics(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
