package handler

import (
	"studio-server/internal/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type meResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type generateScriptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Length string `json:"length"`
}

type generateStoryboardRequest struct {
	// Script overrides the workspace draft's script when provided.
	Script string `json:"script"`
}

type updateTitleRequest struct {
	Title string `json:"title"`
}

type updateDescriptionRequest struct {
	Description string `json:"description"`
}

type updateScriptRequest struct {
	Script string `json:"script"`
}

type updateStoryboardRequest struct {
	Frames []models.StoryboardFrame `json:"frames" binding:"required"`
}

type updateStatusRequest struct {
	Status models.ProjectStatus `json:"status" binding:"required"`
}

type updateAvatarsRequest struct {
	AvatarIDs []string `json:"avatarIds" binding:"required"`
}

type cloneVoiceRequest struct {
	Name       string               `json:"name" binding:"required"`
	SampleText string               `json:"sampleText" binding:"required"`
	Settings   models.VoiceSettings `json:"settings"`
	AvatarID   *string              `json:"avatarId"`
}

type analyzeVoiceRequest struct {
	AudioURL string  `json:"audioUrl"`
	VoiceID  *string `json:"voiceId"`
}

// workspaceResponse is the draft snapshot plus the generation operations
// currently running for the user.
type workspaceResponse struct {
	Project  *models.Project `json:"project"`
	InFlight []string        `json:"inFlight"`
}
