package itinerary

import (
	"time"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

// assetKeys is the ordered set of presentation assets a destination can map
// to. The order is stable; changing it changes every destination's asset.
var assetKeys = []string{
	"generic-beach",
	"generic-city",
	"generic-mountains",
	"generic-historic",
	"generic-island",
	"generic-desert",
}

const fallbackAssetKey = "hero"

// DeriveDisplayStats computes presentation aggregates from an itinerary.
// Pure and idempotent; an itinerary with no days yields zeros.
func DeriveDisplayStats(it models.TripItinerary) models.DisplayStats {
	stats := models.DisplayStats{}
	if len(it.Days) == 0 {
		return stats
	}

	first, errFirst := time.Parse(models.DateLayout, it.Days[0].Date)
	last, errLast := time.Parse(models.DateLayout, it.Days[len(it.Days)-1].Date)
	if errFirst == nil && errLast == nil {
		stats.DurationDays = int(last.Sub(first).Hours()/24) + 1
	}

	for _, day := range it.Days {
		stats.TotalActivities += len(day.Activities)
	}

	for _, day := range it.Days {
		if len(day.Activities) > 0 {
			stats.FirstActivityHint = day.Activities[0].Name
			break
		}
	}

	return stats
}

// AssetKey deterministically maps a destination to a presentation asset.
// Same destination, same asset, every time.
func AssetKey(destination string) string {
	if len(assetKeys) == 0 {
		return fallbackAssetKey
	}
	var hash int
	for _, r := range destination {
		hash += int(r)
	}
	return assetKeys[hash%len(assetKeys)]
}
