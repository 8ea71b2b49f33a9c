package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"studio-server/internal/models"
)

const (
	listAvatarsQuery = `SELECT id, name, gender, appearance, image_url, created_at FROM avatars ORDER BY created_at, name`
	getAvatarQuery   = `SELECT id, name, gender, appearance, image_url, created_at FROM avatars WHERE id = $1`
	seedAvatarsQuery = `
        INSERT INTO avatars (name, gender, appearance, image_url)
        SELECT v.name, v.gender, v.appearance, v.image_url
        FROM (VALUES
            ($1::varchar, $2::varchar, $3::text, $4::text),
            ($5, $6, $7, $8),
            ($9, $10, $11, $12),
            ($13, $14, $15, $16)
        ) AS v(name, gender, appearance, image_url)
        WHERE NOT EXISTS (SELECT 1 FROM avatars)
    `
)

// defaultAvatars is the catalog seeded on first access.
var defaultAvatars = []models.Avatar{
	{
		Name:       "Alex Johnson",
		Gender:     "male",
		Appearance: "Professional, business casual, 30s",
		ImageURL:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?q=80&w=987&auto=format&fit=crop",
	},
	{
		Name:       "Maya Rodriguez",
		Gender:     "female",
		Appearance: "Corporate, business formal, 40s",
		ImageURL:   "https://images.unsplash.com/photo-1573497019940-1c28c88b4f3e?q=80&w=987&auto=format&fit=crop",
	},
	{
		Name:       "Taylor Kim",
		Gender:     "neutral",
		Appearance: "Casual tech, startup style, 20s",
		ImageURL:   "https://images.unsplash.com/photo-1580489944761-15a19d654956?q=80&w=1061&auto=format&fit=crop",
	},
	{
		Name:       "James Wilson",
		Gender:     "male",
		Appearance: "Construction worker, safety gear, 30s",
		ImageURL:   "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?q=80&w=987&auto=format&fit=crop",
	},
}

// Compile-time check to ensure pgAvatarRepository implements AvatarRepository
var _ AvatarRepository = (*pgAvatarRepository)(nil)

type pgAvatarRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgAvatarRepository creates a new PostgreSQL-backed AvatarRepository.
func NewPgAvatarRepository(db DBTX, logger *zap.Logger) AvatarRepository {
	return &pgAvatarRepository{
		db:     db,
		logger: logger.Named("PgAvatarRepo"),
	}
}

// List returns the avatar catalog, seeding the defaults when the table is
// still empty.
func (r *pgAvatarRepository) List(ctx context.Context) ([]models.Avatar, error) {
	var avatars []models.Avatar
	err := pgxscan.Select(ctx, r.db, &avatars, listAvatarsQuery)
	if err != nil {
		r.logger.Error("Failed to list avatars from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list avatars from postgres: %w", err)
	}
	if len(avatars) > 0 {
		return avatars, nil
	}

	if err := r.seedDefaults(ctx); err != nil {
		return nil, err
	}

	avatars = nil
	err = pgxscan.Select(ctx, r.db, &avatars, listAvatarsQuery)
	if err != nil {
		r.logger.Error("Failed to list avatars after seeding", zap.Error(err))
		return nil, fmt.Errorf("failed to list avatars after seeding: %w", err)
	}
	return avatars, nil
}

// GetByID retrieves a single avatar.
func (r *pgAvatarRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Avatar, error) {
	avatar := &models.Avatar{}
	err := pgxscan.Get(ctx, r.db, avatar, getAvatarQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Avatar not found", zap.String("avatarID", id.String()))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get avatar from postgres", zap.Error(err), zap.String("avatarID", id.String()))
		return nil, fmt.Errorf("failed to get avatar from postgres: %w", err)
	}
	return avatar, nil
}

// seedDefaults inserts the default catalog in one statement. The NOT EXISTS
// guard keeps concurrent processes from seeding twice.
func (r *pgAvatarRepository) seedDefaults(ctx context.Context) error {
	r.logger.Info("Avatar catalog is empty, seeding defaults", zap.Int("count", len(defaultAvatars)))

	args := make([]any, 0, len(defaultAvatars)*4)
	for _, avatar := range defaultAvatars {
		args = append(args, avatar.Name, avatar.Gender, avatar.Appearance, avatar.ImageURL)
	}
	if _, err := r.db.Exec(ctx, seedAvatarsQuery, args...); err != nil {
		r.logger.Error("Failed to seed default avatars", zap.Error(err))
		return fmt.Errorf("failed to seed default avatars: %w", err)
	}
	return nil
}
