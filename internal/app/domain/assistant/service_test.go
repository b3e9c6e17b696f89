package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GenerateContent(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, cfg)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) ModelName() string {
	args := m.Called()
	return args.String(0)
}

func TestChat_Success(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("You could add a cooking class on day two.", nil)

	svc := NewService(provider, zap.NewNop())
	resp, detected, err := svc.Chat(context.Background(), models.AssistantRequest{
		UserMessage:      "Any good food experiences to add?",
		CurrentItinerary: "3 days in Paris, museums on day one.",
	})

	require.NoError(t, err)
	assert.Equal(t, "You could add a cooking class on day two.", resp.AssistantResponse)
	assert.Equal(t, []string{"food"}, detected)
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	provider := new(MockProvider)
	svc := NewService(provider, zap.NewNop())

	_, _, err := svc.Chat(context.Background(), models.AssistantRequest{UserMessage: "   "})

	assert.True(t, errors.Is(err, models.ErrValidation))
	provider.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestChat_NoItineraryUsesFallbackContext(t *testing.T) {
	provider := new(MockProvider)
	var captured string
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.String(1) }).
		Return("Sure, where are you headed?", nil)

	svc := NewService(provider, zap.NewNop())
	_, _, err := svc.Chat(context.Background(), models.AssistantRequest{UserMessage: "Help me plan a trip"})

	require.NoError(t, err)
	assert.Contains(t, captured, "No specific itinerary provided yet.")
}

func TestChat_ProviderUnavailable(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("", models.ErrGenerationUnavailable)

	svc := NewService(provider, zap.NewNop())
	_, _, err := svc.Chat(context.Background(), models.AssistantRequest{UserMessage: "hello"})

	assert.True(t, errors.Is(err, models.ErrGenerationUnavailable))
}

func TestSuggestDestinations_Success(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"destinations":[{"name":"Lisbon","description":"Coastal capital.","reason":"Great food on a moderate budget.","activities":["tram ride"],"bestTimeToVisit":"Spring","estimatedCost":"moderate"}]}`, nil)

	svc := NewService(provider, zap.NewNop())
	resp, err := svc.SuggestDestinations(context.Background(), models.SuggestionRequest{
		Preferences: []string{"food", "culture"},
		Budget:      "moderate",
		Season:      "Spring",
	})

	require.NoError(t, err)
	require.Len(t, resp.Destinations, 1)
	assert.Equal(t, "Lisbon", resp.Destinations[0].Name)
}

func TestSuggestDestinations_EmptyListRejected(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"destinations":[]}`, nil)

	svc := NewService(provider, zap.NewNop())
	_, err := svc.SuggestDestinations(context.Background(), models.SuggestionRequest{
		Preferences: []string{"beach"},
	})

	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
}

func TestSuggestDestinations_NoPreferencesRejected(t *testing.T) {
	svc := NewService(new(MockProvider), zap.NewNop())

	_, err := svc.SuggestDestinations(context.Background(), models.SuggestionRequest{})

	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestInterestMatcher_Detect(t *testing.T) {
	m := NewInterestMatcher()

	tags := m.Detect("We love street food and museums, maybe some hiking too")

	assert.Equal(t, []string{"food", "culture", "adventure"}, tags)
}

func TestInterestMatcher_WholeWordsOnly(t *testing.T) {
	m := NewInterestMatcher()

	assert.Empty(t, m.Detect("My barista friend is an artist at heart"))
	assert.Equal(t, []string{"nightlife"}, m.Detect("any good bars nearby?"))
}

func TestInterestMatcher_CaseInsensitive(t *testing.T) {
	m := NewInterestMatcher()

	assert.Equal(t, []string{"relaxation"}, m.Detect("SPA day please"))
}
