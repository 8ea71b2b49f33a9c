package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"studio-server/internal/database"
	"studio-server/internal/models"
	"studio-server/internal/repository"
)

// ProjectRepositorySuite runs the project repository against a real
// PostgreSQL instance so the jsonb round-trip is covered end to end.
type ProjectRepositorySuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	logger      *zap.Logger
}

func (s *ProjectRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	require.NoError(s.T(), database.RunMigrations(connStr, s.logger), "Failed to run migrations")

	s.userRepo = repository.NewPgUserRepository(s.pgPool, s.logger)
	s.projectRepo = repository.NewPgProjectRepository(s.pgPool, s.logger)
}

func (s *ProjectRepositorySuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
}

func (s *ProjectRepositorySuite) SetupTest() {
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE users RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate users table")
}

func (s *ProjectRepositorySuite) createUser(username string) uuid.UUID {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(s.T(), s.userRepo.CreateUser(s.ctx, user))
	return user.ID
}

func TestProjectRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Fatalf("Docker client init error: %v. Ensure Docker is running and accessible.", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Fatalf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(ProjectRepositorySuite))
}

// fullProject builds a project that exercises every jsonb column.
func fullProject() *models.Project {
	return &models.Project{
		Title:       "Warehouse safety",
		Description: "Forklift and pallet handling basics",
		Script:      "Scene one.\n\nScene two.",
		StoryboardFrames: []models.StoryboardFrame{
			{ID: "f1", ImageURL: "https://picsum.photos/seed/a0/1280/720", Description: "Intro shot", Duration: 5, Timestamp: 0},
			{ID: "f2", ImageURL: "https://picsum.photos/seed/b1/1280/720", Description: "Forklift lane", Duration: 7, Timestamp: 5},
		},
		SelectedAvatars: []string{"avatar-1", "avatar-2"},
		Interactions: []models.Interaction{
			{ID: "i1", Type: models.InteractionQuiz, Title: "Check", Description: "Pick one", Options: []string{"Yes", "No"}, Timestamp: 30},
			{ID: "i2", Type: models.InteractionInfo, Title: "Note", Timestamp: 60},
		},
		VoiceOvers: []models.ProjectVoiceOver{
			{ID: "v1", Text: "Welcome", VoiceID: "voice-1", Timestamp: 0, Duration: 4, AudioURL: "https://example.com/v1.mp3"},
		},
		Duration: 120,
		Status:   models.ProjectStatusInProgress,
	}
}

func (s *ProjectRepositorySuite) TestSaveAndReloadProject() {
	t := s.T()
	userID := s.createUser("roundtrip")

	original := fullProject()
	require.NoError(t, s.projectRepo.Save(s.ctx, userID, original))
	require.NotNil(t, original.ID, "Save must assign an ID")
	require.NotNil(t, original.LastSaved, "Save must set the saved timestamp")

	reloaded, err := s.projectRepo.GetByID(s.ctx, userID, *original.ID)
	require.NoError(t, err)

	// Everything except the assigned ID and timestamp must survive the
	// jsonb columns unchanged.
	expected := fullProject()
	reloaded.ID = nil
	reloaded.LastSaved = nil
	require.Equal(t, expected, reloaded)
}

func (s *ProjectRepositorySuite) TestSaveUpdatesExistingRow() {
	t := s.T()
	userID := s.createUser("updater")

	project := fullProject()
	require.NoError(t, s.projectRepo.Save(s.ctx, userID, project))
	firstSaved := *project.LastSaved

	project.Title = "Warehouse safety v2"
	project.Interactions = append(project.Interactions, models.Interaction{ID: "i3", Type: models.InteractionDecision, Title: "Branch", Timestamp: 90})
	require.NoError(t, s.projectRepo.Save(s.ctx, userID, project))

	reloaded, err := s.projectRepo.GetByID(s.ctx, userID, *project.ID)
	require.NoError(t, err)
	require.Equal(t, "Warehouse safety v2", reloaded.Title)
	require.Len(t, reloaded.Interactions, 3)
	require.Equal(t, "i3", reloaded.Interactions[2].ID)
	require.False(t, reloaded.LastSaved.Before(firstSaved))

	count, err := s.projectRepo.CountByUser(s.ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, count, "Updating must not create a second row")
}

func (s *ProjectRepositorySuite) TestProjectsAreScopedToTheOwner() {
	t := s.T()
	owner := s.createUser("owner")
	stranger := s.createUser("stranger")

	project := fullProject()
	require.NoError(t, s.projectRepo.Save(s.ctx, owner, project))

	_, err := s.projectRepo.GetByID(s.ctx, stranger, *project.ID)
	require.ErrorIs(t, err, models.ErrProjectNotFound)

	err = s.projectRepo.Delete(s.ctx, stranger, *project.ID)
	require.ErrorIs(t, err, models.ErrProjectNotFound)

	// The owner still sees the project untouched.
	_, err = s.projectRepo.GetByID(s.ctx, owner, *project.ID)
	require.NoError(t, err)
}

func (s *ProjectRepositorySuite) TestListCountAndDelete() {
	t := s.T()
	userID := s.createUser("lister")

	ids := make([]uuid.UUID, 0, 3)
	for _, title := range []string{"First", "Second", "Third"} {
		project := fullProject()
		project.Title = title
		require.NoError(t, s.projectRepo.Save(s.ctx, userID, project))
		ids = append(ids, *project.ID)
	}

	projects, err := s.projectRepo.ListByUser(s.ctx, userID)
	require.NoError(t, err)
	require.Len(t, projects, 3)

	count, err := s.projectRepo.CountByUser(s.ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	require.NoError(t, s.projectRepo.Delete(s.ctx, userID, ids[0]))

	count, err = s.projectRepo.CountByUser(s.ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	_, err = s.projectRepo.GetByID(s.ctx, userID, ids[0])
	require.ErrorIs(t, err, models.ErrProjectNotFound)
}
