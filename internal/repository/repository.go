package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"studio-server/internal/models"
)

// DBTX abstracts over *pgxpool.Pool and pgx.Tx so repositories can run
// inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ProjectRepository persists content projects. All operations are scoped to
// the owning user: a project belonging to another user behaves as not found.
type ProjectRepository interface {
	// Save inserts the project when it has no ID yet, otherwise updates the
	// existing row. It fills in the assigned ID and the new saved timestamp.
	Save(ctx context.Context, userID uuid.UUID, project *models.Project) error
	GetByID(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	Delete(ctx context.Context, userID, projectID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// AvatarRepository provides the presenter avatar catalog.
type AvatarRepository interface {
	// List returns all avatars, seeding the catalog with the default set when
	// it is empty.
	List(ctx context.Context) ([]models.Avatar, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Avatar, error)
}

// VoiceOverRepository persists cloned voice profiles.
type VoiceOverRepository interface {
	Create(ctx context.Context, voiceOver *models.VoiceOver) error
	GetByID(ctx context.Context, userID, voiceOverID uuid.UUID) (*models.VoiceOver, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.VoiceOver, error)
}

// TokenRepository stores issued token metadata for session management.
type TokenRepository interface {
	SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error
	GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error)
	GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error)
	DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error)
	DeleteRefreshUUID(ctx context.Context, userID uuid.UUID, refreshUUID string) error
	DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
