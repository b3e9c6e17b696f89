package models

import (
	"time"

	"github.com/google/uuid"
)

// Budget tiers accepted by the itinerary planner.
const (
	BudgetFriendly = "budget-friendly"
	BudgetModerate = "moderate"
	BudgetLuxury   = "luxury"
)

// InterestVocabulary is the fixed set of interest tags the planner accepts.
var InterestVocabulary = []string{"culture", "food", "adventure", "relaxation", "nightlife", "shopping"}

// DateLayout is the calendar date format used on the wire (ISO, YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TripRequest carries the user's planning preferences into itinerary
// generation. Field names mirror the planner form payload.
type TripRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
	Travelers   int      `json:"travelers"`
}

// Activity is a single entry in a day plan. Time is free text on purpose,
// the model may answer "Afternoon" rather than a clock value.
type Activity struct {
	Time                   string `json:"time"`
	Name                   string `json:"name"`
	Description            string `json:"description"`
	Location               string `json:"location,omitempty"`
	EstimatedCostPerPerson string `json:"estimatedCostPerPerson,omitempty"`
	Transportation         string `json:"transportation,omitempty"`
}

// DayPlan covers one calendar day of the trip.
type DayPlan struct {
	Day          int        `json:"day"`
	Date         string     `json:"date"`
	DailySummary string     `json:"dailySummary"`
	Activities   []Activity `json:"activities"`
}

// TripItinerary is the structured generation result. It is immutable after
// creation; consumers derive display aggregates from it instead of mutating.
type TripItinerary struct {
	Destination        string    `json:"destination"`
	TripSummary        string    `json:"tripSummary"`
	TotalEstimatedCost string    `json:"totalEstimatedCost,omitempty"`
	Days               []DayPlan `json:"itinerary"`
	Travelers          int       `json:"travelers"`
}

// DisplayStats are the presentation aggregates derived from an itinerary.
type DisplayStats struct {
	DurationDays      int    `json:"durationDays"`
	TotalActivities   int    `json:"totalActivities"`
	FirstActivityHint string `json:"firstActivityHint,omitempty"`
}

// SavedTrip is an itinerary persisted for its owner.
type SavedTrip struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	UserID    uuid.UUID     `json:"-" db:"user_id"`
	Itinerary TripItinerary `json:"itinerary" db:"itinerary"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
}

// AssistantRequest is a single-turn message to the trip assistant. The
// itinerary context is free text; the assistant never mutates itineraries.
type AssistantRequest struct {
	UserMessage      string `json:"userMessage"`
	CurrentItinerary string `json:"currentItinerary,omitempty"`
}

// AssistantResponse wraps the conversational reply.
type AssistantResponse struct {
	AssistantResponse string `json:"assistantResponse"`
}

// SuggestionRequest asks for personalized destination ideas.
type SuggestionRequest struct {
	Preferences []string `json:"preferences"`
	Budget      string   `json:"budget"`
	Season      string   `json:"season"`
}

// DestinationSuggestion is one recommended destination.
type DestinationSuggestion struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Reason          string   `json:"reason"`
	Activities      []string `json:"activities"`
	BestTimeToVisit string   `json:"bestTimeToVisit"`
	EstimatedCost   string   `json:"estimatedCost"`
}

// SuggestionResponse is the structured suggestion payload.
type SuggestionResponse struct {
	Destinations []DestinationSuggestion `json:"destinations"`
}
