package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studio-server/internal/models"
	"studio-server/internal/project"
	"studio-server/internal/service"
)

func (h *Handler) generateScript(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	userID, _ := currentUserID(c)

	var req generateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	if err := ws.BeginOperation(project.OperationScript); err != nil {
		handleServiceError(c, err)
		return
	}
	defer ws.EndOperation(project.OperationScript)

	script, err := h.generationSvc.GenerateScript(c.Request.Context(), userID, req.Prompt, service.ScriptLength(req.Length))
	if err != nil {
		generationsTotal.WithLabelValues("script", "error").Inc()
		handleServiceError(c, err)
		return
	}
	generationsTotal.WithLabelValues("script", "success").Inc()

	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.WithScript(script) })
	c.JSON(http.StatusOK, gin.H{"script": script, "project": updated})
}

func (h *Handler) generateStoryboard(c *gin.Context) {
	ws, ok := h.workspaceFor(c)
	if !ok {
		return
	}
	userID, _ := currentUserID(c)

	var req generateStoryboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	script := req.Script
	if strings.TrimSpace(script) == "" {
		script = ws.Current().Script
	}

	if err := ws.BeginOperation(project.OperationStoryboard); err != nil {
		handleServiceError(c, err)
		return
	}
	defer ws.EndOperation(project.OperationStoryboard)

	frames, err := h.generationSvc.GenerateStoryboard(c.Request.Context(), userID, script)
	if err != nil {
		generationsTotal.WithLabelValues("storyboard", "error").Inc()
		handleServiceError(c, err)
		return
	}
	generationsTotal.WithLabelValues("storyboard", "success").Inc()

	updated := ws.Update(func(d *project.Draft) *project.Draft { return d.WithStoryboardFrames(frames) })
	c.JSON(http.StatusOK, gin.H{"frames": frames, "project": updated})
}
