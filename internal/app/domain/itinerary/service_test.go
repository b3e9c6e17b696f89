package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
	"github.com/Sudhamsh22/voyagefix/internal/pkg/cache"
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

func newTestService(provider *MockProvider) *ServiceImpl {
	return NewService(provider, cache.NewItineraryCache(time.Minute, time.Minute), zap.NewNop())
}

func TestGenerateItinerary_Success(t *testing.T) {
	provider := new(MockProvider)
	payload, err := json.Marshal(parisItinerary())
	require.NoError(t, err)
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(string(payload), nil).Once()

	svc := newTestService(provider)
	it, err := svc.GenerateItinerary(context.Background(), parisRequest())

	require.NoError(t, err)
	assert.Equal(t, "Paris", it.Destination)
	assert.Len(t, it.Days, 3)
	provider.AssertExpectations(t)
}

func TestGenerateItinerary_CachedOnRepeat(t *testing.T) {
	provider := new(MockProvider)
	payload, _ := json.Marshal(parisItinerary())
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(string(payload), nil).Once()

	svc := newTestService(provider)
	_, err := svc.GenerateItinerary(context.Background(), parisRequest())
	require.NoError(t, err)

	// second identical request must not reach the provider
	it, err := svc.GenerateItinerary(context.Background(), parisRequest())
	require.NoError(t, err)
	assert.Equal(t, "Paris", it.Destination)
	provider.AssertNumberOfCalls(t, "GenerateContent", 1)
}

func TestGenerateItinerary_ProviderUnavailable(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("", models.ErrGenerationUnavailable)

	svc := newTestService(provider)
	it, err := svc.GenerateItinerary(context.Background(), parisRequest())

	assert.Nil(t, it)
	assert.True(t, errors.Is(err, models.ErrGenerationUnavailable))
}

func TestGenerateItinerary_MalformedResponse(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("this is not json", nil)

	svc := newTestService(provider)
	it, err := svc.GenerateItinerary(context.Background(), parisRequest())

	assert.Nil(t, it)
	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
}

func TestGenerateItinerary_WrongDayCountRejected(t *testing.T) {
	short := parisItinerary()
	short.Days = short.Days[:1]
	payload, _ := json.Marshal(short)

	provider := new(MockProvider)
	provider.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(string(payload), nil)

	svc := newTestService(provider)
	_, err := svc.GenerateItinerary(context.Background(), parisRequest())

	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
}

func TestGenerateItinerary_InvalidRequestSkipsProvider(t *testing.T) {
	provider := new(MockProvider)
	svc := newTestService(provider)

	cases := []models.TripRequest{
		{}, // missing everything
		{Destination: "Paris", StartDate: "2025-06-03", EndDate: "2025-06-01", Budget: models.BudgetModerate, Interests: []string{"food"}, Travelers: 1},
		{Destination: "Paris", StartDate: "2025-06-01", EndDate: "2025-06-03", Budget: "lavish", Interests: []string{"food"}, Travelers: 1},
		{Destination: "Paris", StartDate: "2025-06-01", EndDate: "2025-06-03", Budget: models.BudgetLuxury, Interests: []string{"spelunking"}, Travelers: 1},
		{Destination: "Paris", StartDate: "2025-06-01", EndDate: "2025-06-03", Budget: models.BudgetLuxury, Interests: []string{"food"}, Travelers: 0},
	}
	for _, req := range cases {
		_, err := svc.GenerateItinerary(context.Background(), req)
		assert.True(t, errors.Is(err, models.ErrValidation), "request %+v", req)
	}
	provider.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestNormalizeRequest_TitleCasesLowercaseDestination(t *testing.T) {
	req := parisRequest()
	req.Destination = "  new   york "

	got, err := normalizeRequest(req)

	require.NoError(t, err)
	assert.Equal(t, "New York", got.Destination)
}

func TestNormalizeRequest_PreservesMixedCaseDestination(t *testing.T) {
	req := parisRequest()
	req.Destination = "McMurdo Station"

	got, err := normalizeRequest(req)

	require.NoError(t, err)
	assert.Equal(t, "McMurdo Station", got.Destination)
}

func TestNormalizeRequest_DeduplicatesInterests(t *testing.T) {
	req := parisRequest()
	req.Interests = []string{"Food", "food", "culture"}

	got, err := normalizeRequest(req)

	require.NoError(t, err)
	assert.Equal(t, []string{"food", "culture"}, got.Interests)
}

func TestRequestFingerprint_InterestOrderInsensitive(t *testing.T) {
	a := parisRequest()
	a.Interests = []string{"food", "culture"}
	b := parisRequest()
	b.Interests = []string{"culture", "food"}

	assert.Equal(t, requestFingerprint(a), requestFingerprint(b))
}
