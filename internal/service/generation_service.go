package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"studio-server/internal/ai"
	"studio-server/internal/models"
)

// ScriptLength selects the token budget for script generation.
type ScriptLength string

const (
	ScriptLengthShort  ScriptLength = "short"
	ScriptLengthMedium ScriptLength = "medium"
	ScriptLengthLong   ScriptLength = "long"
)

const (
	scriptSystemPrompt = "You are a helpful assistant that writes engaging, clear, and concise training video scripts. The script should be suitable for AI avatar video generation."

	storyboardSystemPrompt = `You create concise descriptions for video scenes and generate image prompts based on script segments. Respond in JSON format with "description" and "imagePrompt" keys.`

	// maxConcurrentSceneRequests caps the per-scene fan-out so a long script
	// cannot flood the AI API.
	maxConcurrentSceneRequests = 4

	sceneMaxTokens     = 300
	minFrameDuration   = 5
	frameCharsPerSec   = 15
	defaultTemperature = 0.7
)

// GenerationService produces scripts and storyboards with the AI API.
type GenerationService interface {
	// GenerateScript writes a training video script for the prompt. The
	// length selects the completion token budget.
	GenerateScript(ctx context.Context, userID uuid.UUID, prompt string, length ScriptLength) (string, error)
	// GenerateStoryboard splits the script into scenes on blank lines and
	// produces one frame per scene.
	GenerateStoryboard(ctx context.Context, userID uuid.UUID, script string) ([]models.StoryboardFrame, error)
}

// Compile-time check to ensure generationServiceImpl implements GenerationService
var _ GenerationService = (*generationServiceImpl)(nil)

type generationServiceImpl struct {
	aiClient ai.Client
	logger   *zap.Logger
}

// NewGenerationService creates a new instance of generationServiceImpl.
func NewGenerationService(aiClient ai.Client, logger *zap.Logger) GenerationService {
	return &generationServiceImpl{
		aiClient: aiClient,
		logger:   logger.Named("GenerationService"),
	}
}

// maxTokensFor maps a requested length to the completion budget. Unknown
// values fall back to medium.
func maxTokensFor(length ScriptLength) int {
	switch length {
	case ScriptLengthShort:
		return 300
	case ScriptLengthLong:
		return 1200
	default:
		return 600
	}
}

// GenerateScript produces a script for the given prompt.
func (s *generationServiceImpl) GenerateScript(ctx context.Context, userID uuid.UUID, prompt string, length ScriptLength) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt is required: %w", models.ErrValidation)
	}

	maxTokens := maxTokensFor(length)
	temperature := defaultTemperature
	s.logger.Info("Generating script",
		zap.String("userID", userID.String()),
		zap.String("length", string(length)),
		zap.Int("maxTokens", maxTokens),
	)

	script, _, err := s.aiClient.GenerateText(ctx, userID.String(), scriptSystemPrompt, prompt, ai.GenerationParams{
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		s.logger.Error("Script generation failed", zap.Error(err), zap.String("userID", userID.String()))
		return "", fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}
	return strings.TrimSpace(script), nil
}

// sceneResult is the JSON document the AI returns for a single scene.
type sceneResult struct {
	Description string `json:"description"`
	ImagePrompt string `json:"imagePrompt"`
}

// GenerateStoryboard fans out one AI request per scene and assembles the
// frames in script order.
func (s *generationServiceImpl) GenerateStoryboard(ctx context.Context, userID uuid.UUID, script string) ([]models.StoryboardFrame, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, fmt.Errorf("script is required: %w", models.ErrValidation)
	}

	scenes := splitScenes(script)
	if len(scenes) == 0 {
		return []models.StoryboardFrame{}, nil
	}

	s.logger.Info("Generating storyboard",
		zap.String("userID", userID.String()),
		zap.Int("scenes", len(scenes)),
	)

	frames := make([]models.StoryboardFrame, len(scenes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSceneRequests)

	for i, scene := range scenes {
		g.Go(func() error {
			frame, err := s.generateFrame(gctx, userID, scene, i)
			if err != nil {
				return err
			}
			frames[i] = *frame
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("Storyboard generation failed", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	// Frame timestamps are the running start offsets within the video.
	offset := 0
	for i := range frames {
		frames[i].Timestamp = offset
		offset += frames[i].Duration
	}
	return frames, nil
}

// generateFrame produces a single storyboard frame for a scene.
func (s *generationServiceImpl) generateFrame(ctx context.Context, userID uuid.UUID, scene string, index int) (*models.StoryboardFrame, error) {
	userPrompt := fmt.Sprintf(
		`Create a short description and detailed image prompt for this script segment: %q. The description should be concise (under 100 characters), and the image prompt should be detailed enough to generate a compelling visual.`,
		scene,
	)

	maxTokens := sceneMaxTokens
	temperature := defaultTemperature
	raw, _, err := s.aiClient.GenerateText(ctx, userID.String(), storyboardSystemPrompt, userPrompt, ai.GenerationParams{
		Temperature:  &temperature,
		MaxTokens:    &maxTokens,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("scene %d: %w", index, err)
	}

	var result sceneResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Error("Failed to decode scene description",
			zap.Error(err),
			zap.Int("scene", index),
			zap.String("userID", userID.String()),
		)
		return nil, fmt.Errorf("scene %d: failed to decode AI response: %w", index, err)
	}

	return &models.StoryboardFrame{
		ID:          uuid.New().String(),
		ImageURL:    placeholderImageURL(scene, index),
		Description: result.Description,
		Duration:    estimateFrameDuration(scene),
	}, nil
}

// splitScenes breaks a script into scenes on blank lines, dropping
// whitespace-only segments.
func splitScenes(script string) []string {
	parts := strings.Split(script, "\n\n")
	scenes := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			scenes = append(scenes, part)
		}
	}
	return scenes
}

// estimateFrameDuration estimates scene screen time from its text length,
// with a five second floor.
func estimateFrameDuration(scene string) int {
	estimated := int(math.Round(float64(len(scene)) / frameCharsPerSec))
	if estimated < minFrameDuration {
		return minFrameDuration
	}
	return estimated
}

// placeholderImageURL builds a deterministic placeholder image for a scene.
// Image generation proper is out of scope; the seed keeps the picture stable
// across regenerations of the same scene.
func placeholderImageURL(scene string, index int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s%d/1280/720", url.PathEscape(truncateRunes(scene, 10)), index)
}

// truncateRunes shortens s to at most n characters without splitting a
// multi-byte rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
