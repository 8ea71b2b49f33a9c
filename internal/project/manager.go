package project

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studio-server/internal/repository"
)

// Manager hands out one workspace per user, creating it lazily on first use.
type Manager struct {
	repo   repository.ProjectRepository
	logger *zap.Logger

	mu         sync.RWMutex
	workspaces map[uuid.UUID]*Workspace
}

// NewManager creates an empty workspace manager.
func NewManager(repo repository.ProjectRepository, logger *zap.Logger) *Manager {
	return &Manager{
		repo:       repo,
		logger:     logger.Named("WorkspaceManager"),
		workspaces: make(map[uuid.UUID]*Workspace),
	}
}

// Workspace returns the user's workspace, creating it when missing.
func (m *Manager) Workspace(userID uuid.UUID) *Workspace {
	m.mu.RLock()
	ws, ok := m.workspaces[userID]
	m.mu.RUnlock()
	if ok {
		return ws
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ws, ok := m.workspaces[userID]; ok {
		return ws
	}
	ws = NewWorkspace(userID, m.repo, m.logger)
	m.workspaces[userID] = ws
	m.logger.Debug("Workspace created", zap.String("userID", userID.String()))
	return ws
}

// Remove drops the user's workspace, discarding any unsaved draft. Called
// when the user's session ends.
func (m *Manager) Remove(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.workspaces[userID]; ok {
		delete(m.workspaces, userID)
		m.logger.Debug("Workspace removed", zap.String("userID", userID.String()))
	}
}
