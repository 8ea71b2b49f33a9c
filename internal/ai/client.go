package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Price per million tokens, used for the estimated cost metric.
const (
	pricePerMillionInputTokensUSD  = 0.1
	pricePerMillionOutputTokensUSD = 0.4
)

// ErrAIGenerationFailed is returned when the AI API call fails or yields
// an empty completion.
var ErrAIGenerationFailed = errors.New("AI text generation failed")

// GenerationParams carries per-request generation settings. Pointers
// distinguish "not set" from an explicit zero.
type GenerationParams struct {
	Temperature *float64
	MaxTokens   *int
	TopP        *float64
	// JSONResponse forces the API to return a JSON object.
	JSONResponse bool
}

// UsageInfo reports token usage and estimated cost for a single request.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	EstimatedCostUSD float64
}

// Client is the interface for text generation against the AI API.
//
//go:generate mockery --name Client --output ./mocks --outpkg mocks --case=underscore
type Client interface {
	// GenerateText produces a completion for the given system prompt and user
	// input. Returns the generated text and usage information.
	GenerateText(ctx context.Context, userID string, systemPrompt string, userInput string, params GenerationParams) (string, UsageInfo, error)
}

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studio_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studio_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studio_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"model"},
	)
	aiEstimatedCostUSD = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_ai_estimated_cost_usd_total",
			Help: "Estimated total cost of AI requests in USD.",
		},
		[]string{"model"},
	)
)

func calculateCost(promptTokens, completionTokens int) float64 {
	inputCost := float64(promptTokens) * pricePerMillionInputTokensUSD / 1_000_000.0
	outputCost := float64(completionTokens) * pricePerMillionOutputTokensUSD / 1_000_000.0
	return inputCost + outputCost
}

// Config holds the settings for the OpenAI-compatible client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Compile-time check to ensure openAIClient implements Client
var _ Client = (*openAIClient)(nil)

type openAIClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient creates a Client backed by an OpenAI-compatible API.
func NewOpenAIClient(cfg Config, logger *zap.Logger) Client {
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	openaiConfig.BaseURL = cfg.BaseURL
	openaiConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
	}
	client := openaigo.NewClientWithConfig(openaiConfig)

	log := logger.Named("AIClient")
	log.Info("OpenAI client created",
		zap.String("baseURL", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout),
	)
	return &openAIClient{
		client: client,
		model:  cfg.Model,
		logger: log,
	}
}

// GenerateText sends a chat completion request and returns the first choice.
func (c *openAIClient) GenerateText(ctx context.Context, userID string, systemPrompt string, userInput string, params GenerationParams) (string, UsageInfo, error) {
	usageInfo := UsageInfo{}

	if strings.TrimSpace(systemPrompt) == "" {
		c.logger.Error("System prompt is empty", zap.String("userID", userID))
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: system prompt is empty", ErrAIGenerationFailed)
	}

	messages := []openaigo.ChatCompletionMessage{
		{
			Role:    openaigo.ChatMessageRoleSystem,
			Content: systemPrompt,
		},
	}
	if userInput != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    openaigo.ChatMessageRoleUser,
			Content: userInput,
		})
	}

	startTime := time.Now()
	c.logger.Debug("Sending request to AI API",
		zap.String("model", c.model),
		zap.Int("systemPromptBytes", len(systemPrompt)),
		zap.Int("userInputBytes", len(userInput)),
		zap.String("userID", userID),
	)

	request := openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32Val(params.Temperature),
		MaxTokens:   intVal(params.MaxTokens),
		TopP:        float32Val(params.TopP),
	}
	if params.JSONResponse {
		request.ResponseFormat = &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)

	duration := time.Since(startTime)

	if err != nil {
		c.logger.Error("AI API request failed",
			zap.Error(err),
			zap.Duration("duration", duration),
			zap.String("userID", userID),
		)
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Error("AI API returned an empty response",
			zap.Duration("duration", duration),
			zap.String("userID", userID),
		)
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty response", ErrAIGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	generatedText := resp.Choices[0].Message.Content
	c.logger.Debug("AI API response received",
		zap.Duration("duration", duration),
		zap.Int("responseLength", len(generatedText)),
		zap.String("userID", userID),
	)

	if resp.Usage.TotalTokens > 0 {
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(resp.Usage.PromptTokens))
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(resp.Usage.CompletionTokens))

		usageInfo.PromptTokens = resp.Usage.PromptTokens
		usageInfo.CompletionTokens = resp.Usage.CompletionTokens
		usageInfo.TotalTokens = resp.Usage.TotalTokens
		usageInfo.EstimatedCostUSD = calculateCost(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		if usageInfo.EstimatedCostUSD > 0 {
			aiEstimatedCostUSD.With(prometheus.Labels{"model": c.model}).Add(usageInfo.EstimatedCostUSD)
		}
	}

	return generatedText, usageInfo, nil
}

func float32Val(f64 *float64) float32 {
	if f64 == nil {
		return 1.0
	}
	return float32(*f64)
}

func intVal(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
