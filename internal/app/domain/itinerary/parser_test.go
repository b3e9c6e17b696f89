package itinerary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

func parisRequest() models.TripRequest {
	return models.TripRequest{
		Destination: "Paris",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-03",
		Budget:      models.BudgetModerate,
		Interests:   []string{"culture", "food"},
		Travelers:   2,
	}
}

func parisItinerary() *models.TripItinerary {
	return &models.TripItinerary{
		Destination: "Paris",
		TripSummary: "Three days of museums, markets, and bistros.",
		Travelers:   2,
		Days: []models.DayPlan{
			{
				Day: 1, Date: "2025-06-01", DailySummary: "Louvre and the Seine.",
				Activities: []models.Activity{
					{Time: "Morning", Name: "Louvre Museum", Description: "Skip-the-line visit to the main wing."},
					{Time: "Evening", Name: "Seine Dinner Cruise", Description: "Dinner on the river."},
				},
			},
			{
				Day: 2, Date: "2025-06-02", DailySummary: "Montmartre and food markets.",
				Activities: []models.Activity{
					{Time: "Morning", Name: "Montmartre Walk", Description: "Sacre-Coeur and artists' square."},
				},
			},
			{
				Day: 3, Date: "2025-06-03", DailySummary: "Versailles day trip.",
				Activities: []models.Activity{
					{Time: "All day", Name: "Versailles Palace", Description: "Palace and gardens."},
				},
			},
		},
	}
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONResponse(`{"a":1}`))
}

func TestParseItinerary_EmptyResponse(t *testing.T) {
	_, err := parseItinerary("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
}

func TestParseItinerary_MalformedJSON(t *testing.T) {
	_, err := parseItinerary(`{"destination": "Paris",`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
}

func TestValidateItinerary_Valid(t *testing.T) {
	err := validateItinerary(parisItinerary(), parisRequest())
	assert.NoError(t, err)
}

func TestValidateItinerary_DayCountMismatch(t *testing.T) {
	it := parisItinerary()
	it.Days = it.Days[:2]

	err := validateItinerary(it, parisRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
	assert.Contains(t, err.Error(), "expected 3 days")
}

func TestValidateItinerary_DayNumberOutOfSequence(t *testing.T) {
	it := parisItinerary()
	it.Days[1].Day = 3

	err := validateItinerary(it, parisRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
}

func TestValidateItinerary_NonContiguousDates(t *testing.T) {
	it := parisItinerary()
	it.Days[1].Date = "2025-06-05"

	err := validateItinerary(it, parisRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
}

func TestValidateItinerary_MissingSummary(t *testing.T) {
	it := parisItinerary()
	it.TripSummary = ""

	err := validateItinerary(it, parisRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
}

func TestValidateItinerary_ActivityMissingName(t *testing.T) {
	it := parisItinerary()
	it.Days[0].Activities[0].Name = ""

	err := validateItinerary(it, parisRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationInvalidResponse))
}

func TestValidateItinerary_SingleDayTrip(t *testing.T) {
	req := parisRequest()
	req.StartDate = "2025-06-01"
	req.EndDate = "2025-06-01"

	it := parisItinerary()
	it.Days = it.Days[:1]

	assert.NoError(t, validateItinerary(it, req))
}
