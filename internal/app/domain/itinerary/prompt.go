package itinerary

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

// buildItineraryPrompt embeds every request field verbatim and spells out the
// whole-range requirement so the model covers each calendar day.
func buildItineraryPrompt(req models.TripRequest) string {
	var b strings.Builder
	b.WriteString("You are an expert travel agent specializing in creating personalized, detailed day-by-day itineraries. ")
	b.WriteString("Your goal is to generate an engaging and practical travel plan based on the user's preferences.\n\n")
	b.WriteString("Here are the details for the trip:\n")
	fmt.Fprintf(&b, "Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "Start Date: %s\n", req.StartDate)
	fmt.Fprintf(&b, "End Date: %s\n", req.EndDate)
	fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	fmt.Fprintf(&b, "Interests: %s\n", strings.Join(req.Interests, ", "))
	fmt.Fprintf(&b, "Number of Travelers: %d\n\n", req.Travelers)
	b.WriteString("Please generate a detailed day-by-day itinerary for the trip.\n")
	b.WriteString("Each day should include a summary and a list of specific activities, including estimated times, names, descriptions, locations (if applicable), estimated cost per person for that activity, and suggested transportation.\n")
	b.WriteString("The itinerary must cover the entire duration from the start date to the end date, one entry per calendar day, with 1-based consecutive day numbers and dates in YYYY-MM-DD format.\n")
	b.WriteString("Also, provide an overall trip summary and an estimated total cost for the entire trip (excluding flights and primary accommodation, focusing on activities, food, and local transport).\n")
	b.WriteString("Return the original destination name in the 'destination' field and the original number of travelers in the 'travelers' field.\n\n")
	b.WriteString("Ensure the output is a JSON object matching the provided output schema.")
	return b.String()
}

// itineraryResponseSchema constrains the provider's output to the
// TripItinerary shape.
func itineraryResponseSchema() *genai.Schema {
	activitySchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"time":                   {Type: genai.TypeString, Description: "Suggested time, e.g. \"9:00 AM\" or \"Afternoon\"."},
			"name":                   {Type: genai.TypeString},
			"description":            {Type: genai.TypeString},
			"location":               {Type: genai.TypeString},
			"estimatedCostPerPerson": {Type: genai.TypeString, Description: "e.g. \"$30 for entry\"."},
			"transportation":         {Type: genai.TypeString, Description: "e.g. \"Metro line 9\" or \"Walk\"."},
		},
		Required: []string{"time", "name", "description"},
	}

	daySchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day":          {Type: genai.TypeInteger, Description: "1-based day number."},
			"date":         {Type: genai.TypeString, Description: "Date in YYYY-MM-DD format."},
			"dailySummary": {Type: genai.TypeString},
			"activities":   {Type: genai.TypeArray, Items: activitySchema},
		},
		Required: []string{"day", "date", "dailySummary", "activities"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"destination":        {Type: genai.TypeString},
			"tripSummary":        {Type: genai.TypeString},
			"totalEstimatedCost": {Type: genai.TypeString},
			"itinerary":          {Type: genai.TypeArray, Items: daySchema},
			"travelers":          {Type: genai.TypeInteger},
		},
		Required: []string{"destination", "tripSummary", "itinerary", "travelers"},
	}
}
