package handler

import (
	"github.com/gin-gonic/gin"

	"studio-server/internal/config"
	"studio-server/internal/project"
	"studio-server/internal/repository"
	"studio-server/internal/service"
)

// Handler wires the HTTP surface to the services.
type Handler struct {
	authService      service.AuthService
	generationSvc    service.GenerationService
	voiceService     service.VoiceService
	analyticsService service.AnalyticsService
	avatarRepo       repository.AvatarRepository
	workspaces       *project.Manager
	cfg              *config.Config
}

// NewHandler creates a new Handler.
func NewHandler(
	authService service.AuthService,
	generationSvc service.GenerationService,
	voiceService service.VoiceService,
	analyticsService service.AnalyticsService,
	avatarRepo repository.AvatarRepository,
	workspaces *project.Manager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authService:      authService,
		generationSvc:    generationSvc,
		voiceService:     voiceService,
		analyticsService: analyticsService,
		avatarRepo:       avatarRepo,
		workspaces:       workspaces,
		cfg:              cfg,
	}
}

// RegisterRoutes mounts all endpoints on the router. The rate limiter
// guards only the auth routes; authenticated API traffic is not throttled.
func (h *Handler) RegisterRoutes(router *gin.Engine, authRateLimit gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	if authRateLimit != nil {
		authGroup.Use(authRateLimit)
	}
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.AuthMiddleware(), h.logout)
		authGroup.POST("/refresh", h.refresh)
	}

	api := router.Group("/api")
	api.Use(h.AuthMiddleware())
	{
		api.GET("/me", h.getMe)

		api.GET("/avatars", h.listAvatars)

		api.POST("/generate/script", h.generateScript)
		api.POST("/generate/storyboard", h.generateStoryboard)

		api.GET("/voices", h.listVoices)
		api.POST("/voice/clone", h.cloneVoice)
		api.POST("/voice/analyze", h.analyzeVoice)

		api.GET("/analytics", h.getAnalytics)

		api.GET("/projects", h.listProjects)
		api.DELETE("/projects/:project_id", h.deleteProject)

		workspace := api.Group("/workspace")
		{
			workspace.GET("", h.getWorkspace)
			workspace.POST("/reset", h.resetWorkspace)
			workspace.POST("/save", h.saveWorkspace)
			workspace.POST("/load/:project_id", h.loadProject)

			workspace.PUT("/title", h.updateTitle)
			workspace.PUT("/description", h.updateDescription)
			workspace.PUT("/script", h.updateScript)
			workspace.PUT("/storyboard", h.updateStoryboard)
			workspace.PUT("/status", h.updateStatus)
			workspace.PUT("/avatars", h.updateSelectedAvatars)

			workspace.POST("/interactions", h.addInteraction)
			workspace.PUT("/interactions/:interaction_id", h.updateInteraction)
			workspace.DELETE("/interactions/:interaction_id", h.removeInteraction)

			workspace.POST("/voiceovers", h.addVoiceOver)
			workspace.PUT("/voiceovers/:voiceover_id", h.updateVoiceOver)
			workspace.DELETE("/voiceovers/:voiceover_id", h.removeVoiceOver)
		}
	}
}
