package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studio-server/internal/models"
	"studio-server/internal/project"
)

func (h *Handler) listVoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleServiceError(c, models.ErrInternalServer)
		return
	}
	voices, err := h.voiceService.ListVoices(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, voices)
}

func (h *Handler) cloneVoice(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	userID, _ := currentUserID(c)

	var req cloneVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	var avatarID *uuid.UUID
	if req.AvatarID != nil {
		parsed, err := uuid.Parse(*req.AvatarID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid avatar ID"})
			return
		}
		// An unknown avatar would otherwise only fail deep in the insert.
		if _, err := h.avatarRepo.GetByID(c.Request.Context(), parsed); err != nil {
			handleServiceError(c, err)
			return
		}
		avatarID = &parsed
	}

	if err := ws.BeginOperation(project.OperationVoiceClone); err != nil {
		handleServiceError(c, err)
		return
	}
	defer ws.EndOperation(project.OperationVoiceClone)

	voice, err := h.voiceService.CloneVoice(c.Request.Context(), userID, req.Name, req.SampleText, req.Settings, avatarID)
	if err != nil {
		generationsTotal.WithLabelValues("voice_clone", "error").Inc()
		handleServiceError(c, err)
		return
	}
	generationsTotal.WithLabelValues("voice_clone", "success").Inc()
	c.JSON(http.StatusCreated, voice)
}

func (h *Handler) analyzeVoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		handleServiceError(c, models.ErrInternalServer)
		return
	}

	var req analyzeVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	var voiceID *uuid.UUID
	if req.VoiceID != nil {
		parsed, err := uuid.Parse(*req.VoiceID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid voice ID"})
			return
		}
		voiceID = &parsed
	}

	analysis, err := h.voiceService.AnalyzeVoice(c.Request.Context(), userID, req.AudioURL, voiceID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
