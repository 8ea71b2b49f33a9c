package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"studio-server/internal/models"
)

const (
	insertVoiceOverQuery = `
        INSERT INTO voice_overs (user_id, name, avatar_id, audio_url, transcript, duration, voice_settings)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	selectVoiceOverQuery = `
        SELECT vo.id, vo.user_id, vo.name, vo.avatar_id, vo.audio_url, vo.transcript, vo.duration, vo.voice_settings, vo.created_at,
               a.id, a.name, a.gender, a.appearance, a.image_url, a.created_at
        FROM voice_overs vo
        LEFT JOIN avatars a ON a.id = vo.avatar_id
        WHERE vo.id = $1 AND vo.user_id = $2
    `
	listVoiceOversQuery = `
        SELECT vo.id, vo.user_id, vo.name, vo.avatar_id, vo.audio_url, vo.transcript, vo.duration, vo.voice_settings, vo.created_at,
               a.id, a.name, a.gender, a.appearance, a.image_url, a.created_at
        FROM voice_overs vo
        LEFT JOIN avatars a ON a.id = vo.avatar_id
        WHERE vo.user_id = $1
        ORDER BY vo.created_at DESC
    `
)

// Compile-time check to ensure pgVoiceOverRepository implements VoiceOverRepository
var _ VoiceOverRepository = (*pgVoiceOverRepository)(nil)

type pgVoiceOverRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgVoiceOverRepository creates a new PostgreSQL-backed VoiceOverRepository.
func NewPgVoiceOverRepository(db DBTX, logger *zap.Logger) VoiceOverRepository {
	return &pgVoiceOverRepository{
		db:     db,
		logger: logger.Named("PgVoiceOverRepo"),
	}
}

// Create inserts a new voice profile. The assigned ID and creation time are
// written back into the passed model.
func (r *pgVoiceOverRepository) Create(ctx context.Context, voiceOver *models.VoiceOver) error {
	settings := voiceOver.Settings
	if settings == nil {
		settings = models.VoiceSettings{}
	}
	err := r.db.QueryRow(ctx, insertVoiceOverQuery,
		voiceOver.UserID, voiceOver.Name, voiceOver.AvatarID,
		voiceOver.AudioURL, voiceOver.Transcript, voiceOver.Duration, settings,
	).Scan(&voiceOver.ID, &voiceOver.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert voice over", zap.Error(err), zap.String("userID", voiceOver.UserID.String()))
		return fmt.Errorf("failed to insert voice over: %w", err)
	}
	r.logger.Info("Voice over created",
		zap.String("voiceOverID", voiceOver.ID.String()),
		zap.String("userID", voiceOver.UserID.String()),
	)
	return nil
}

// GetByID retrieves a voice profile owned by the user, with its linked avatar.
func (r *pgVoiceOverRepository) GetByID(ctx context.Context, userID, voiceOverID uuid.UUID) (*models.VoiceOver, error) {
	row := r.db.QueryRow(ctx, selectVoiceOverQuery, voiceOverID, userID)
	voiceOver, err := scanVoiceOver(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Voice over not found",
				zap.String("voiceOverID", voiceOverID.String()),
				zap.String("userID", userID.String()),
			)
			return nil, models.ErrVoiceNotFound
		}
		r.logger.Error("Failed to get voice over from postgres", zap.Error(err), zap.String("voiceOverID", voiceOverID.String()))
		return nil, fmt.Errorf("failed to get voice over from postgres: %w", err)
	}
	return voiceOver, nil
}

// ListByUser retrieves the user's voice profiles, newest first.
func (r *pgVoiceOverRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.VoiceOver, error) {
	rows, err := r.db.Query(ctx, listVoiceOversQuery, userID)
	if err != nil {
		r.logger.Error("Failed to list voice overs from postgres", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to list voice overs from postgres: %w", err)
	}
	defer rows.Close()

	voiceOvers := make([]*models.VoiceOver, 0)
	for rows.Next() {
		voiceOver, err := scanVoiceOver(rows)
		if err != nil {
			r.logger.Error("Failed to scan voice over row", zap.Error(err), zap.String("userID", userID.String()))
			return nil, fmt.Errorf("failed to scan voice over row: %w", err)
		}
		voiceOvers = append(voiceOvers, voiceOver)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Voice over rows iteration failed", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("voice over rows iteration failed: %w", err)
	}
	return voiceOvers, nil
}

// scanVoiceOver reads a joined voice_overs+avatars row. Avatar columns are
// NULL when the profile has no linked avatar.
func scanVoiceOver(row pgx.Row) (*models.VoiceOver, error) {
	voiceOver := &models.VoiceOver{}
	var (
		avatarID         *uuid.UUID
		avatarName       *string
		avatarGender     *string
		avatarAppearance *string
		avatarImageURL   *string
		avatarCreatedAt  *time.Time
	)

	err := row.Scan(
		&voiceOver.ID, &voiceOver.UserID, &voiceOver.Name, &voiceOver.AvatarID,
		&voiceOver.AudioURL, &voiceOver.Transcript, &voiceOver.Duration,
		&voiceOver.Settings, &voiceOver.CreatedAt,
		&avatarID, &avatarName, &avatarGender, &avatarAppearance, &avatarImageURL, &avatarCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if avatarID != nil {
		voiceOver.Avatar = &models.Avatar{
			ID:         *avatarID,
			Name:       *avatarName,
			Gender:     *avatarGender,
			Appearance: *avatarAppearance,
			ImageURL:   *avatarImageURL,
			CreatedAt:  *avatarCreatedAt,
		}
	}
	return voiceOver, nil
}
