package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studio-server/internal/ai"
	aimocks "studio-server/internal/ai/mocks"
	"studio-server/internal/models"
)

func TestGenerateScript(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("empty prompt fails validation without an AI call", func(t *testing.T) {
		aiClient := aimocks.NewMockClient(t)
		svc := NewGenerationService(aiClient, zap.NewNop())

		_, err := svc.GenerateScript(ctx, userID, "   ", ScriptLengthMedium)

		assert.ErrorIs(t, err, models.ErrValidation)
		aiClient.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("length selects the token budget", func(t *testing.T) {
		cases := []struct {
			length    ScriptLength
			maxTokens int
		}{
			{ScriptLengthShort, 300},
			{ScriptLengthMedium, 600},
			{ScriptLengthLong, 1200},
			{ScriptLength("bogus"), 600},
		}
		for _, tc := range cases {
			aiClient := aimocks.NewMockClient(t)
			aiClient.On("GenerateText", mock.Anything, userID.String(), mock.Anything, "Workplace safety basics",
				mock.MatchedBy(func(params ai.GenerationParams) bool {
					return params.MaxTokens != nil && *params.MaxTokens == tc.maxTokens
				})).
				Return("  Generated script.  ", ai.UsageInfo{}, nil).Once()

			svc := NewGenerationService(aiClient, zap.NewNop())
			script, err := svc.GenerateScript(ctx, userID, "Workplace safety basics", tc.length)

			require.NoError(t, err, "length %q", tc.length)
			assert.Equal(t, "Generated script.", script)
			aiClient.AssertExpectations(t)
		}
	})

	t.Run("upstream failure maps to generation error", func(t *testing.T) {
		aiClient := aimocks.NewMockClient(t)
		aiClient.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", ai.UsageInfo{}, errors.New("boom")).Once()

		svc := NewGenerationService(aiClient, zap.NewNop())
		_, err := svc.GenerateScript(ctx, userID, "Topic", ScriptLengthMedium)

		assert.ErrorIs(t, err, models.ErrGenerationFailed)
	})
}

func TestGenerateStoryboard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("empty script fails validation", func(t *testing.T) {
		aiClient := aimocks.NewMockClient(t)
		svc := NewGenerationService(aiClient, zap.NewNop())

		_, err := svc.GenerateStoryboard(ctx, userID, "")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("one frame per blank-line separated scene", func(t *testing.T) {
		aiClient := aimocks.NewMockClient(t)
		aiClient.On("GenerateText", mock.Anything, userID.String(), mock.Anything, mock.Anything,
			mock.MatchedBy(func(params ai.GenerationParams) bool { return params.JSONResponse })).
			Return(`{"description":"A scene","imagePrompt":"a detailed shot"}`, ai.UsageInfo{}, nil).Times(2)

		svc := NewGenerationService(aiClient, zap.NewNop())
		frames, err := svc.GenerateStoryboard(ctx, userID, "Scene one intro.\n\n\n\nScene two wrap-up.")

		require.NoError(t, err)
		require.Len(t, frames, 2)
		for _, frame := range frames {
			assert.NotEmpty(t, frame.ID)
			assert.Equal(t, "A scene", frame.Description)
			assert.Contains(t, frame.ImageURL, "https://picsum.photos/seed/")
			// Short scenes hit the duration floor.
			assert.Equal(t, 5, frame.Duration)
		}
		// Timestamps are running start offsets.
		assert.Equal(t, 0, frames[0].Timestamp)
		assert.Equal(t, frames[0].Duration, frames[1].Timestamp)
		aiClient.AssertExpectations(t)
	})

	t.Run("frame duration scales with scene length", func(t *testing.T) {
		aiClient := aimocks.NewMockClient(t)
		aiClient.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(`{"description":"Long","imagePrompt":"p"}`, ai.UsageInfo{}, nil).Once()

		scene := make([]byte, 150)
		for i := range scene {
			scene[i] = 'a'
		}

		svc := NewGenerationService(aiClient, zap.NewNop())
		frames, err := svc.GenerateStoryboard(ctx, userID, string(scene))

		require.NoError(t, err)
		require.Len(t, frames, 1)
		assert.Equal(t, 10, frames[0].Duration)
	})

	t.Run("malformed scene JSON fails the whole storyboard", func(t *testing.T) {
		aiClient := aimocks.NewMockClient(t)
		aiClient.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("not json", ai.UsageInfo{}, nil)

		svc := NewGenerationService(aiClient, zap.NewNop())
		_, err := svc.GenerateStoryboard(ctx, userID, "Scene one.")

		assert.ErrorIs(t, err, models.ErrGenerationFailed)
	})
}

func TestSplitScenes(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitScenes("a\n\nb"))
	assert.Equal(t, []string{"a"}, splitScenes("a\n\n   \n\n"))
	assert.Empty(t, splitScenes("   "))
}

func TestPlaceholderImageURL(t *testing.T) {
	t.Run("short scene keeps its full text as the seed", func(t *testing.T) {
		assert.Equal(t, "https://picsum.photos/seed/intro2/1280/720", placeholderImageURL("intro", 2))
	})

	t.Run("multi-byte scene truncates by characters", func(t *testing.T) {
		// Ten Cyrillic characters are twenty bytes; the seed must not cut
		// a rune in half.
		got := placeholderImageURL("Безопасность на складе", 0)
		assert.Equal(t, "https://picsum.photos/seed/"+url.PathEscape("Безопаснос")+"0/1280/720", got)
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "exactlyten", truncateRunes("exactlyten!", 10))
	assert.Equal(t, "Безопаснос", truncateRunes("Безопасность", 10))
}
