package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listAvatars(c *gin.Context) {
	avatars, err := h.avatarRepo.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, avatars)
}
