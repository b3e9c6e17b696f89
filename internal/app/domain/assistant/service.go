package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Sudhamsh22/voyagefix/internal/app/generativeai"
	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the conversational side of the planner: single-turn chat plus
// destination suggestions. The assistant advises, it never edits itineraries.
type Service interface {
	Chat(ctx context.Context, req models.AssistantRequest) (*models.AssistantResponse, []string, error)
	SuggestDestinations(ctx context.Context, req models.SuggestionRequest) (*models.SuggestionResponse, error)
}

type ServiceImpl struct {
	provider generativeai.Provider
	matcher  *InterestMatcher
	logger   *zap.Logger
}

func NewService(provider generativeai.Provider, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		provider: provider,
		matcher:  NewInterestMatcher(),
		logger:   logger,
	}
}

// Chat answers one user message in the context of an optional itinerary
// summary. The detected interest tags are returned alongside the reply so the
// caller can pre-fill planner filters.
func (s *ServiceImpl) Chat(ctx context.Context, req models.AssistantRequest) (*models.AssistantResponse, []string, error) {
	ctx, span := otel.Tracer("AssistantService").Start(ctx, "AssistantService.Chat")
	defer span.End()

	req.UserMessage = strings.TrimSpace(req.UserMessage)
	if req.UserMessage == "" {
		return nil, nil, fmt.Errorf("user message is required: %w", models.ErrValidation)
	}

	detected := s.matcher.Detect(req.UserMessage)
	span.SetAttributes(attribute.StringSlice("interests.detected", detected))

	responseText, err := s.provider.GenerateContent(ctx, buildChatPrompt(req, detected), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Chat generation failed")
		return nil, nil, err
	}
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return nil, nil, fmt.Errorf("empty assistant reply: %w", models.ErrGenerationInvalidResponse)
	}

	return &models.AssistantResponse{AssistantResponse: responseText}, detected, nil
}

func buildChatPrompt(req models.AssistantRequest, detected []string) string {
	var b strings.Builder
	b.WriteString("You are an AI-powered travel assistant named VoyageFix, designed to help users with their travel plans.\n")
	b.WriteString("Your goal is to answer questions about trips, suggest activities, and help modify existing itineraries in a conversational and helpful way.\n\n")

	b.WriteString("Current Trip Itinerary (if available):\n")
	if req.CurrentItinerary != "" {
		b.WriteString(req.CurrentItinerary)
		b.WriteString("\n")
	} else {
		b.WriteString("No specific itinerary provided yet.\n")
	}

	if len(detected) > 0 {
		fmt.Fprintf(&b, "\nThe user seems interested in: %s. Lean suggestions toward these themes.\n", strings.Join(detected, ", "))
	}

	fmt.Fprintf(&b, "\nUser's message: %s\n\n", req.UserMessage)
	b.WriteString("Based on the user's message and the current itinerary (if provided), please provide a helpful and conversational response.\n")
	b.WriteString("If the user asks to modify the itinerary, suggest how it could be modified. Do not actually modify the itinerary yourself, just provide suggestions.\n")
	return b.String()
}

// SuggestDestinations returns 3-5 personalized destination ideas as
// structured JSON, validated before being handed to the caller.
func (s *ServiceImpl) SuggestDestinations(ctx context.Context, req models.SuggestionRequest) (*models.SuggestionResponse, error) {
	ctx, span := otel.Tracer("AssistantService").Start(ctx, "AssistantService.SuggestDestinations")
	defer span.End()

	if len(req.Preferences) == 0 {
		return nil, fmt.Errorf("at least one preference is required: %w", models.ErrValidation)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.5),
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionResponseSchema(),
	}

	responseText, err := s.provider.GenerateContent(ctx, buildSuggestionPrompt(req), cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Suggestion generation failed")
		return nil, err
	}

	suggestions, err := parseSuggestions(responseText)
	if err != nil {
		s.logger.Warn("Suggestion response failed validation", zap.Error(err))
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("destinations.count", len(suggestions.Destinations)))
	return suggestions, nil
}

func buildSuggestionPrompt(req models.SuggestionRequest) string {
	var b strings.Builder
	b.WriteString("You are an expert travel agent. Based on the user's preferences, budget, and desired travel season, suggest 3-5 personalized travel destinations.\n\n")
	b.WriteString("For each destination, provide its name, a brief description, a clear reason why it fits the user's criteria, suggested activities, the best time to visit, and an estimated cost indicator.\n\n")
	fmt.Fprintf(&b, "User Preferences: %s\n", strings.Join(req.Preferences, ", "))
	fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	fmt.Fprintf(&b, "Season: %s", req.Season)
	return b.String()
}

func suggestionResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"destinations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":            {Type: genai.TypeString},
						"description":     {Type: genai.TypeString},
						"reason":          {Type: genai.TypeString},
						"activities":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"bestTimeToVisit": {Type: genai.TypeString},
						"estimatedCost":   {Type: genai.TypeString},
					},
					Required: []string{"name", "description", "reason", "activities", "bestTimeToVisit", "estimatedCost"},
				},
			},
		},
		Required: []string{"destinations"},
	}
}

func parseSuggestions(responseText string) (*models.SuggestionResponse, error) {
	if responseText == "" {
		return nil, fmt.Errorf("empty response text: %w", models.ErrGenerationInvalidResponse)
	}

	var resp models.SuggestionResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(responseText)), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %v: %w", err, models.ErrGenerationInvalidResponse)
	}
	if len(resp.Destinations) == 0 {
		return nil, fmt.Errorf("no destinations suggested: %w", models.ErrGenerationInvalidResponse)
	}
	for i, d := range resp.Destinations {
		if d.Name == "" || d.Description == "" || d.Reason == "" {
			return nil, fmt.Errorf("suggestion %d missing required fields: %w", i, models.ErrGenerationInvalidResponse)
		}
	}
	return &resp, nil
}
