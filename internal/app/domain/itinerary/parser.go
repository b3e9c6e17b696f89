package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

// cleanJSONResponse removes markdown code fences the model sometimes wraps
// around its JSON output.
func cleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// parseItinerary decodes the raw provider response into a TripItinerary.
// Any decode failure is a malformed-response error, never a silent default.
func parseItinerary(responseText string) (*models.TripItinerary, error) {
	if responseText == "" {
		return nil, fmt.Errorf("empty response text: %w", models.ErrGenerationInvalidResponse)
	}

	cleaned := cleanJSONResponse(responseText)

	var it models.TripItinerary
	if err := json.Unmarshal([]byte(cleaned), &it); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary: %v: %w", err, models.ErrGenerationInvalidResponse)
	}
	return &it, nil
}

// validateItinerary enforces the response contract against the originating
// request: required fields present, day numbers 1-based and gapless, dates
// contiguous and spanning exactly [startDate, endDate]. Violations are
// rejected at the boundary instead of rendered inconsistently.
func validateItinerary(it *models.TripItinerary, req models.TripRequest) error {
	if it.Destination == "" {
		return fmt.Errorf("missing destination: %w", models.ErrGenerationInvalidResponse)
	}
	if it.TripSummary == "" {
		return fmt.Errorf("missing trip summary: %w", models.ErrGenerationInvalidResponse)
	}
	if it.Travelers < 1 {
		return fmt.Errorf("travelers must be >= 1, got %d: %w", it.Travelers, models.ErrGenerationInvalidResponse)
	}
	if len(it.Days) == 0 {
		return fmt.Errorf("empty day sequence: %w", models.ErrGenerationInvalidResponse)
	}

	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return fmt.Errorf("invalid request start date %q: %w", req.StartDate, models.ErrValidation)
	}
	end, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil {
		return fmt.Errorf("invalid request end date %q: %w", req.EndDate, models.ErrValidation)
	}

	wantDays := int(end.Sub(start).Hours()/24) + 1
	if len(it.Days) != wantDays {
		return fmt.Errorf("expected %d days for %s..%s, got %d: %w",
			wantDays, req.StartDate, req.EndDate, len(it.Days), models.ErrGenerationInvalidResponse)
	}

	for i, day := range it.Days {
		if day.Day != i+1 {
			return fmt.Errorf("day number out of sequence at index %d: got %d: %w",
				i, day.Day, models.ErrGenerationInvalidResponse)
		}
		date, err := time.Parse(models.DateLayout, day.Date)
		if err != nil {
			return fmt.Errorf("day %d has malformed date %q: %w", day.Day, day.Date, models.ErrGenerationInvalidResponse)
		}
		if want := start.AddDate(0, 0, i); !date.Equal(want) {
			return fmt.Errorf("day %d dated %s, expected %s: %w",
				day.Day, day.Date, want.Format(models.DateLayout), models.ErrGenerationInvalidResponse)
		}
		if day.DailySummary == "" {
			return fmt.Errorf("day %d missing summary: %w", day.Day, models.ErrGenerationInvalidResponse)
		}
		for j, act := range day.Activities {
			if act.Name == "" || act.Description == "" {
				return fmt.Errorf("day %d activity %d missing name or description: %w",
					day.Day, j, models.ErrGenerationInvalidResponse)
			}
		}
	}

	return nil
}
