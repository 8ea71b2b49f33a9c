package project

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studio-server/internal/models"
	"studio-server/internal/repository"
)

// OperationKind identifies a long-running generation operation tracked by
// the workspace. At most one operation of each kind may run at a time.
type OperationKind string

const (
	OperationScript     OperationKind = "script"
	OperationStoryboard OperationKind = "storyboard"
	OperationVoiceClone OperationKind = "voice-clone"
)

// Workspace is a user's editing session: the draft being worked on plus the
// set of generation operations currently in flight. All methods are safe for
// concurrent use.
type Workspace struct {
	userID uuid.UUID
	repo   repository.ProjectRepository
	logger *zap.Logger

	mu       sync.Mutex
	draft    *Draft
	inFlight map[OperationKind]struct{}
}

// NewWorkspace creates a workspace with an empty draft.
func NewWorkspace(userID uuid.UUID, repo repository.ProjectRepository, logger *zap.Logger) *Workspace {
	return &Workspace{
		userID:   userID,
		repo:     repo,
		logger:   logger.Named("Workspace").With(zap.String("userID", userID.String())),
		draft:    NewDraft(),
		inFlight: make(map[OperationKind]struct{}),
	}
}

// Current returns a snapshot of the draft.
func (w *Workspace) Current() *models.Project {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Project()
}

// Reset discards the draft and returns the workspace to the initial state.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = NewDraft()
	w.logger.Debug("Workspace reset")
}

// Update applies a draft transformation under the workspace lock and returns
// the resulting snapshot.
func (w *Workspace) Update(fn func(*Draft) *Draft) *models.Project {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = fn(w.draft)
	return w.draft.Project()
}

// UpdateSelectedAvatars replaces the avatar selection. The returned flag
// reports whether the draft actually changed.
func (w *Workspace) UpdateSelectedAvatars(avatarIDs []string) (*models.Project, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, changed := w.draft.WithSelectedAvatars(avatarIDs)
	w.draft = next
	return w.draft.Project(), changed
}

// BeginOperation reserves an operation slot of the given kind. It fails with
// ErrOperationInProgress when an operation of the same kind is running.
func (w *Workspace) BeginOperation(kind OperationKind) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, running := w.inFlight[kind]; running {
		w.logger.Warn("Operation already in progress", zap.String("kind", string(kind)))
		return models.ErrOperationInProgress
	}
	w.inFlight[kind] = struct{}{}
	return nil
}

// EndOperation releases a slot reserved by BeginOperation.
func (w *Workspace) EndOperation(kind OperationKind) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, kind)
}

// InFlight lists the kinds of operations currently running, sorted for
// stable output.
func (w *Workspace) InFlight() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	kinds := make([]string, 0, len(w.inFlight))
	for kind := range w.inFlight {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	return kinds
}

// Save validates and persists the draft. A blank title fails with
// ErrTitleRequired before the repository is touched. On success the draft
// adopts the assigned ID and saved timestamp, and the snapshot is returned.
func (w *Workspace) Save(ctx context.Context) (*models.Project, error) {
	w.mu.Lock()
	snapshot := w.draft.Project()
	w.mu.Unlock()

	if strings.TrimSpace(snapshot.Title) == "" {
		w.logger.Debug("Save rejected: empty title")
		return nil, models.ErrTitleRequired
	}

	if err := w.repo.Save(ctx, w.userID, snapshot); err != nil {
		return nil, err
	}

	w.mu.Lock()
	// Save filled in ID and LastSaved; adopt them without clobbering edits
	// made while the write was in progress.
	current := w.draft.Project()
	current.ID = snapshot.ID
	current.LastSaved = snapshot.LastSaved
	w.draft = FromProject(current)
	result := w.draft.Project()
	w.mu.Unlock()

	w.logger.Info("Project saved", zap.String("projectID", snapshot.ID.String()))
	return result, nil
}

// Load replaces the draft wholesale with a persisted project.
func (w *Workspace) Load(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	loaded, err := w.repo.GetByID(ctx, w.userID, projectID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.draft = FromProject(loaded)
	result := w.draft.Project()
	w.mu.Unlock()

	w.logger.Info("Project loaded into workspace", zap.String("projectID", projectID.String()))
	return result, nil
}

// Delete removes a persisted project. Deleting the project currently open
// in the workspace also resets the draft.
func (w *Workspace) Delete(ctx context.Context, projectID uuid.UUID) error {
	if err := w.repo.Delete(ctx, w.userID, projectID); err != nil {
		return err
	}

	w.mu.Lock()
	if current := w.draft.Project(); current.ID != nil && *current.ID == projectID {
		w.draft = NewDraft()
		w.logger.Debug("Open project deleted, workspace reset", zap.String("projectID", projectID.String()))
	}
	w.mu.Unlock()

	w.logger.Info("Project deleted", zap.String("projectID", projectID.String()))
	return nil
}

// List returns the user's persisted projects, most recently saved first.
func (w *Workspace) List(ctx context.Context) ([]*models.Project, error) {
	return w.repo.ListByUser(ctx, w.userID)
}
