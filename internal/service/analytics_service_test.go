package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studio-server/internal/models"
	"studio-server/internal/repository/mocks"
)

func newSeededAnalyticsService(t *testing.T, repo *mocks.MockProjectRepository) *analyticsServiceImpl {
	t.Helper()
	svc := NewAnalyticsService(repo, rand.New(rand.NewSource(42)), zap.NewNop()).(*analyticsServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetAnalytics(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("scales views by project count and caps rates", func(t *testing.T) {
		projects := make([]*models.Project, 3)
		for i := range projects {
			id := uuid.New()
			projects[i] = &models.Project{ID: &id, Title: "Project"}
		}

		repo := mocks.NewMockProjectRepository(t)
		repo.On("CountByUser", mock.Anything, userID).Return(len(projects), nil).Once()
		repo.On("ListByUser", mock.Anything, userID).Return(projects, nil).Once()

		svc := newSeededAnalyticsService(t, repo)
		data, err := svc.GetAnalytics(ctx, userID)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, data.Views, 3*150)
		assert.Less(t, data.Views, 3*150+500)
		assert.LessOrEqual(t, data.CompletionRate, 95)
		assert.LessOrEqual(t, data.AverageEngagement, 95)
		assert.LessOrEqual(t, data.InteractionRate, 95)
		repo.AssertExpectations(t)
	})

	t.Run("daily views cover the past week oldest first", func(t *testing.T) {
		repo := mocks.NewMockProjectRepository(t)
		repo.On("CountByUser", mock.Anything, userID).Return(0, nil).Once()
		repo.On("ListByUser", mock.Anything, userID).Return([]*models.Project{}, nil).Once()

		svc := newSeededAnalyticsService(t, repo)
		data, err := svc.GetAnalytics(ctx, userID)

		require.NoError(t, err)
		require.Len(t, data.DailyViewsData, 7)
		assert.Equal(t, "2024-06-09", data.DailyViewsData[0].Date)
		assert.Equal(t, "2024-06-15", data.DailyViewsData[6].Date)
		for _, day := range data.DailyViewsData {
			assert.GreaterOrEqual(t, day.Views, 20)
			assert.Less(t, day.Views, 120)
		}
	})

	t.Run("top content is capped at four and sorted by views", func(t *testing.T) {
		projects := make([]*models.Project, 6)
		for i := range projects {
			id := uuid.New()
			projects[i] = &models.Project{ID: &id, Title: "Project"}
		}
		// Unsaved projects have no ID and are skipped.
		projects = append(projects, &models.Project{Title: "Unsaved"})

		repo := mocks.NewMockProjectRepository(t)
		repo.On("CountByUser", mock.Anything, userID).Return(len(projects), nil).Once()
		repo.On("ListByUser", mock.Anything, userID).Return(projects, nil).Once()

		svc := newSeededAnalyticsService(t, repo)
		data, err := svc.GetAnalytics(ctx, userID)

		require.NoError(t, err)
		require.Len(t, data.TopPerformingContent, 4)
		for i := 1; i < len(data.TopPerformingContent); i++ {
			assert.GreaterOrEqual(t, data.TopPerformingContent[i-1].Views, data.TopPerformingContent[i].Views)
		}
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo := mocks.NewMockProjectRepository(t)
		repo.On("CountByUser", mock.Anything, userID).Return(0, models.ErrInternalServer).Once()

		svc := newSeededAnalyticsService(t, repo)
		_, err := svc.GetAnalytics(ctx, userID)

		assert.ErrorIs(t, err, models.ErrInternalServer)
	})
}
