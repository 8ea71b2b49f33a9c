package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studio-server/internal/models"
	"studio-server/internal/project"
)

// workspaceFor resolves the caller's workspace. A false return means the
// response has already been written.
func (h *Handler) workspaceFor(c *gin.Context) (*project.Workspace, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		handleServiceError(c, models.ErrInternalServer)
		return nil, false
	}
	return h.workspaces.Workspace(userID), true
}

func (h *Handler) getWorkspace(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, workspaceResponse{
		Project:  ws.Current(),
		InFlight: ws.InFlight(),
	})
}

func (h *Handler) resetWorkspace(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	ws.Reset()
	c.JSON(http.StatusOK, workspaceResponse{
		Project:  ws.Current(),
		InFlight: ws.InFlight(),
	})
}

func (h *Handler) saveWorkspace(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	saved, err := ws.Save(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	projectSavesTotal.Inc()
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) loadProject(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid project ID"})
		return
	}
	loaded, err := ws.Load(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, loaded)
}

func (h *Handler) listProjects(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	projects, err := ws.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) deleteProject(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid project ID"})
		return
	}
	if err := ws.Delete(c.Request.Context(), projectID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *Handler) updateTitle(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var req updateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.WithTitle(req.Title) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) updateDescription(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var req updateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.WithDescription(req.Description) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) updateScript(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var req updateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.WithScript(req.Script) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) updateStoryboard(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var req updateStoryboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.WithStoryboardFrames(req.Frames) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) updateStatus(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	switch req.Status {
	case models.ProjectStatusDraft, models.ProjectStatusInProgress, models.ProjectStatusCompleted:
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Message: "Unknown project status"})
		return
	}
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.WithStatus(req.Status) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) updateSelectedAvatars(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var req updateAvatarsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	updated, changed := ws.UpdateSelectedAvatars(req.AvatarIDs)
	c.JSON(http.StatusOK, gin.H{"project": updated, "changed": changed})
}

func (h *Handler) addInteraction(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var interaction models.Interaction
	if err := c.ShouldBindJSON(&interaction); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	if interaction.ID == "" {
		interaction.ID = uuid.New().String()
	}
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.AddInteraction(interaction) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) updateInteraction(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var interaction models.Interaction
	if err := c.ShouldBindJSON(&interaction); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	interaction.ID = c.Param("interaction_id")
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.UpdateInteraction(interaction) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) removeInteraction(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	interactionID := c.Param("interaction_id")
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.RemoveInteraction(interactionID) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) addVoiceOver(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var voiceOver models.ProjectVoiceOver
	if err := c.ShouldBindJSON(&voiceOver); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	if voiceOver.ID == "" {
		voiceOver.ID = uuid.New().String()
	}
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.AddVoiceOver(voiceOver) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) updateVoiceOver(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	var voiceOver models.ProjectVoiceOver
	if err := c.ShouldBindJSON(&voiceOver); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	voiceOver.ID = c.Param("voiceover_id")
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.UpdateVoiceOver(voiceOver) })
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) removeVoiceOver(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	voiceOverID := c.Param("voiceover_id")
	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.RemoveVoiceOver(voiceOverID) })
	c.JSON(http.StatusOK, updated)
}
