package generativeai

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
	"github.com/Sudhamsh22/voyagefix/internal/pkg/config"
)

const defaultTemperature = 0.5

// Provider is the single-outcome generation boundary. One prompt in, one
// response text out. No streaming, no retained conversation state.
type Provider interface {
	GenerateContent(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error)
	ModelName() string
}

var _ Provider = (*GeminiClient)(nil)

// GeminiClient talks to the Gemini API. A client built without an API key is
// still usable as a dependency; every call reports ErrGenerationUnavailable.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiClient builds the provider client. A missing API key is not a
// startup error, the rest of the application keeps working without AI.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, generation features disabled")
		return &GeminiClient{model: cfg.Model, logger: logger}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: cfg.Model, logger: logger}, nil
}

func (ai *GeminiClient) ModelName() string { return ai.model }

// GenerateContent sends one prompt and returns the raw response text.
func (ai *GeminiClient) GenerateContent(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateContent", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.model),
	))
	defer span.End()

	if ai.client == nil {
		err := fmt.Errorf("gemini client not configured: %w", models.ErrGenerationUnavailable)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Client not configured")
		return "", err
	}

	if cfg == nil {
		cfg = &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](defaultTemperature)}
	}

	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		ai.logger.Error("Gemini request failed", zap.Error(err))
		return "", fmt.Errorf("gemini request failed: %v: %w", err, models.ErrGenerationUnavailable)
	}

	responseText := result.Text()
	span.SetAttributes(attribute.Int("response.length", len(responseText)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return responseText, nil
}
