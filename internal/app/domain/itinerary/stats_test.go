package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

func TestDeriveDisplayStats(t *testing.T) {
	it := parisItinerary()

	stats := DeriveDisplayStats(*it)

	assert.Equal(t, 3, stats.DurationDays)
	assert.Equal(t, 4, stats.TotalActivities)
	assert.Equal(t, "Louvre Museum", stats.FirstActivityHint)
}

func TestDeriveDisplayStats_Idempotent(t *testing.T) {
	it := parisItinerary()

	first := DeriveDisplayStats(*it)
	second := DeriveDisplayStats(*it)

	assert.Equal(t, first, second)
	// input is untouched
	assert.Len(t, it.Days, 3)
	assert.Equal(t, "Paris", it.Destination)
}

func TestDeriveDisplayStats_EmptyDays(t *testing.T) {
	stats := DeriveDisplayStats(models.TripItinerary{Destination: "Paris"})

	assert.Zero(t, stats.DurationDays)
	assert.Zero(t, stats.TotalActivities)
	assert.Empty(t, stats.FirstActivityHint)
}

func TestDeriveDisplayStats_FirstDayWithoutActivities(t *testing.T) {
	it := parisItinerary()
	it.Days[0].Activities = nil

	stats := DeriveDisplayStats(*it)

	assert.Equal(t, "Montmartre Walk", stats.FirstActivityHint)
	assert.Equal(t, 2, stats.TotalActivities)
}

func TestAssetKey_Deterministic(t *testing.T) {
	first := AssetKey("Reykjavik")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, AssetKey("Reykjavik"))
	}
	assert.Contains(t, assetKeys, first)
}

func TestAssetKey_CoversEveryDestination(t *testing.T) {
	for _, destination := range []string{"", "Paris", "Tokyo", "São Paulo", "x"} {
		key := AssetKey(destination)
		assert.Contains(t, assetKeys, key)
	}
}
