package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studio-server/internal/models"
	"studio-server/internal/repository/mocks"
)

func TestCloneVoice(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("missing name or sample text fails validation", func(t *testing.T) {
		repo := mocks.NewMockVoiceOverRepository(t)
		svc := NewVoiceService(repo, zap.NewNop())

		_, err := svc.CloneVoice(ctx, userID, "", "sample", nil, nil)
		assert.ErrorIs(t, err, models.ErrValidation)

		_, err = svc.CloneVoice(ctx, userID, "My voice", "   ", nil, nil)
		assert.ErrorIs(t, err, models.ErrValidation)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("stores the profile with estimated duration", func(t *testing.T) {
		repo := mocks.NewMockVoiceOverRepository(t)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.VoiceOver")).Return(nil).Once()

		svc := NewVoiceService(repo, zap.NewNop())
		// 100 characters at 20 chars/sec is 5 seconds.
		voice, err := svc.CloneVoice(ctx, userID, "Narrator", strings.Repeat("ab", 50), models.VoiceSettings{"pitch": 1.2}, nil)

		require.NoError(t, err)
		assert.Equal(t, userID, voice.UserID)
		assert.Equal(t, 5, voice.Duration)
		assert.Equal(t, strings.Repeat("ab", 50), voice.Transcript)
		assert.NotEmpty(t, voice.AudioURL)
		repo.AssertExpectations(t)
	})

	t.Run("short sample hits the duration floor", func(t *testing.T) {
		repo := mocks.NewMockVoiceOverRepository(t)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		svc := NewVoiceService(repo, zap.NewNop())
		voice, err := svc.CloneVoice(ctx, userID, "Narrator", "Hi", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, voice.Duration)
	})
}

func TestAnalyzeVoice(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("requires audio URL or voice ID", func(t *testing.T) {
		repo := mocks.NewMockVoiceOverRepository(t)
		svc := NewVoiceService(repo, zap.NewNop())

		_, err := svc.AnalyzeVoice(ctx, userID, "   ", nil)
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("same audio URL always yields the same scores", func(t *testing.T) {
		repo := mocks.NewMockVoiceOverRepository(t)
		svc := NewVoiceService(repo, zap.NewNop())

		first, err := svc.AnalyzeVoice(ctx, userID, "https://example.com/recording.mp3", nil)
		require.NoError(t, err)
		second, err := svc.AnalyzeVoice(ctx, userID, "https://example.com/recording.mp3", nil)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("scores stay within bounds", func(t *testing.T) {
		repo := mocks.NewMockVoiceOverRepository(t)
		svc := NewVoiceService(repo, zap.NewNop())

		urls := []string{"https://a.example/x.mp3", "https://b.example/y.mp3", "https://c.example/z.mp3"}
		for _, u := range urls {
			analysis, err := svc.AnalyzeVoice(ctx, userID, u, nil)
			require.NoError(t, err)
			for name, score := range map[string]int{
				"clarity":    analysis.Clarity,
				"emotion":    analysis.Emotion,
				"pace":       analysis.Pace,
				"engagement": analysis.Engagement,
			} {
				assert.GreaterOrEqual(t, score, 60, "%s for %s", name, u)
				assert.Less(t, score, 95, "%s for %s", name, u)
			}
			assert.NotEmpty(t, analysis.Recommendations)
		}
	})

	t.Run("non-ASCII URLs are distinguished within the first ten characters", func(t *testing.T) {
		repo := mocks.NewMockVoiceOverRepository(t)
		svc := NewVoiceService(repo, zap.NewNop())

		// Both URLs share the same first ten bytes; the seed must cover
		// ten characters, so they score differently.
		first, err := svc.AnalyzeVoice(ctx, userID, "Голос-one", nil)
		require.NoError(t, err)
		second, err := svc.AnalyzeVoice(ctx, userID, "Голос-two", nil)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("voice ID is checked against the owner", func(t *testing.T) {
		voiceID := uuid.New()
		repo := mocks.NewMockVoiceOverRepository(t)
		repo.On("GetByID", mock.Anything, userID, voiceID).Return(nil, models.ErrVoiceNotFound).Once()

		svc := NewVoiceService(repo, zap.NewNop())
		_, err := svc.AnalyzeVoice(ctx, userID, "", &voiceID)

		assert.ErrorIs(t, err, models.ErrVoiceNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("owned voice ID seeds the scores", func(t *testing.T) {
		voiceID := uuid.New()
		repo := mocks.NewMockVoiceOverRepository(t)
		repo.On("GetByID", mock.Anything, userID, voiceID).
			Return(&models.VoiceOver{ID: voiceID, UserID: userID}, nil).Twice()

		svc := NewVoiceService(repo, zap.NewNop())
		first, err := svc.AnalyzeVoice(ctx, userID, "", &voiceID)
		require.NoError(t, err)
		second, err := svc.AnalyzeVoice(ctx, userID, "", &voiceID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		repo.AssertExpectations(t)
	})
}
