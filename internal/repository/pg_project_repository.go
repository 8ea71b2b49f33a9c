package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"studio-server/internal/models"
)

const (
	insertProjectQuery = `
        INSERT INTO projects (user_id, title, description, script, storyboard_frames, selected_avatars, interactions, voice_overs, duration, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, updated_at
    `
	updateProjectQuery = `
        UPDATE projects SET
            title = $3,
            description = $4,
            script = $5,
            storyboard_frames = $6,
            selected_avatars = $7,
            interactions = $8,
            voice_overs = $9,
            duration = $10,
            status = $11,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $1 AND user_id = $2
        RETURNING updated_at
    `
	selectProjectQuery = `
        SELECT id, user_id, title, description, script, storyboard_frames, selected_avatars, interactions, voice_overs, duration, status, created_at, updated_at
        FROM projects
        WHERE id = $1 AND user_id = $2
    `
	listProjectsQuery = `
        SELECT id, user_id, title, description, script, storyboard_frames, selected_avatars, interactions, voice_overs, duration, status, created_at, updated_at
        FROM projects
        WHERE user_id = $1
        ORDER BY updated_at DESC
    `
	deleteProjectQuery = `DELETE FROM projects WHERE id = $1 AND user_id = $2`
	countProjectsQuery = `SELECT COUNT(*) FROM projects WHERE user_id = $1`
)

// projectRow mirrors the projects table. Sub-collections live in jsonb
// columns and are decoded straight into the model slices.
type projectRow struct {
	ID               uuid.UUID                 `db:"id"`
	UserID           uuid.UUID                 `db:"user_id"`
	Title            string                    `db:"title"`
	Description      string                    `db:"description"`
	Script           string                    `db:"script"`
	StoryboardFrames []models.StoryboardFrame  `db:"storyboard_frames"`
	SelectedAvatars  []string                  `db:"selected_avatars"`
	Interactions     []models.Interaction      `db:"interactions"`
	VoiceOvers       []models.ProjectVoiceOver `db:"voice_overs"`
	Duration         int                       `db:"duration"`
	Status           models.ProjectStatus      `db:"status"`
	CreatedAt        time.Time                 `db:"created_at"`
	UpdatedAt        time.Time                 `db:"updated_at"`
}

func (row *projectRow) toModel() *models.Project {
	id := row.ID
	lastSaved := row.UpdatedAt
	return &models.Project{
		ID:               &id,
		Title:            row.Title,
		Description:      row.Description,
		Script:           row.Script,
		StoryboardFrames: row.StoryboardFrames,
		SelectedAvatars:  row.SelectedAvatars,
		Interactions:     row.Interactions,
		VoiceOvers:       row.VoiceOvers,
		Duration:         row.Duration,
		Status:           row.Status,
		LastSaved:        &lastSaved,
	}
}

// Compile-time check to ensure pgProjectRepository implements ProjectRepository
var _ ProjectRepository = (*pgProjectRepository)(nil)

type pgProjectRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgProjectRepository creates a new PostgreSQL-backed ProjectRepository.
func NewPgProjectRepository(db DBTX, logger *zap.Logger) ProjectRepository {
	return &pgProjectRepository{
		db:     db,
		logger: logger.Named("PgProjectRepo"),
	}
}

// Save inserts the project when it carries no ID, otherwise updates the row
// owned by the user. The assigned ID and saved timestamp are written back
// into the passed project.
func (r *pgProjectRepository) Save(ctx context.Context, userID uuid.UUID, project *models.Project) error {
	// jsonb columns reject NULL, keep empty collections as empty literals
	frames := project.StoryboardFrames
	if frames == nil {
		frames = []models.StoryboardFrame{}
	}
	avatars := project.SelectedAvatars
	if avatars == nil {
		avatars = []string{}
	}
	interactions := project.Interactions
	if interactions == nil {
		interactions = []models.Interaction{}
	}
	voiceOvers := project.VoiceOvers
	if voiceOvers == nil {
		voiceOvers = []models.ProjectVoiceOver{}
	}
	status := project.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}

	if project.ID == nil {
		var id uuid.UUID
		var updatedAt time.Time
		err := r.db.QueryRow(ctx, insertProjectQuery,
			userID, project.Title, project.Description, project.Script,
			frames, avatars, interactions, voiceOvers,
			project.Duration, status,
		).Scan(&id, &updatedAt)
		if err != nil {
			r.logger.Error("Failed to insert project", zap.Error(err), zap.String("userID", userID.String()))
			return fmt.Errorf("failed to insert project: %w", err)
		}
		project.ID = &id
		project.LastSaved = &updatedAt
		r.logger.Info("Project created", zap.String("projectID", id.String()), zap.String("userID", userID.String()))
		return nil
	}

	var updatedAt time.Time
	err := r.db.QueryRow(ctx, updateProjectQuery,
		*project.ID, userID, project.Title, project.Description, project.Script,
		frames, avatars, interactions, voiceOvers,
		project.Duration, status,
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Project not found for update",
				zap.String("projectID", project.ID.String()),
				zap.String("userID", userID.String()),
			)
			return models.ErrProjectNotFound
		}
		r.logger.Error("Failed to update project", zap.Error(err), zap.String("projectID", project.ID.String()))
		return fmt.Errorf("failed to update project: %w", err)
	}
	project.LastSaved = &updatedAt
	r.logger.Info("Project updated", zap.String("projectID", project.ID.String()), zap.String("userID", userID.String()))
	return nil
}

// GetByID retrieves a single project owned by the user.
func (r *pgProjectRepository) GetByID(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error) {
	var row projectRow
	err := pgxscan.Get(ctx, r.db, &row, selectProjectQuery, projectID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Project not found",
				zap.String("projectID", projectID.String()),
				zap.String("userID", userID.String()),
			)
			return nil, models.ErrProjectNotFound
		}
		r.logger.Error("Failed to get project from postgres", zap.Error(err), zap.String("projectID", projectID.String()))
		return nil, fmt.Errorf("failed to get project from postgres: %w", err)
	}
	return row.toModel(), nil
}

// ListByUser retrieves the user's projects, most recently saved first.
func (r *pgProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	var rows []*projectRow
	err := pgxscan.Select(ctx, r.db, &rows, listProjectsQuery, userID)
	if err != nil {
		r.logger.Error("Failed to list projects from postgres", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to list projects from postgres: %w", err)
	}

	projects := make([]*models.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, row.toModel())
	}
	return projects, nil
}

// Delete removes a project owned by the user.
func (r *pgProjectRepository) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteProjectQuery, projectID, userID)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Error(err), zap.String("projectID", projectID.String()))
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Project not found for delete",
			zap.String("projectID", projectID.String()),
			zap.String("userID", userID.String()),
		)
		return models.ErrProjectNotFound
	}
	r.logger.Info("Project deleted", zap.String("projectID", projectID.String()), zap.String("userID", userID.String()))
	return nil
}

// CountByUser returns the number of projects the user owns.
func (r *pgProjectRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, countProjectsQuery, userID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count projects", zap.Error(err), zap.String("userID", userID.String()))
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}
