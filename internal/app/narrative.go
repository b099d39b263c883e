package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"itinerate/internal/domain"
)

// promptAttraction is what the generator gets to see of an attraction.
// ID, tags and duration stay on our side.
type promptAttraction struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	EntryFee      float64 `json:"entry_fee"`
	EffortScore   int     `json:"effort_score"`
	EffortDetails string  `json:"effort_details"`
}

// BuildNarrativeRequest shapes the prompt and output contract for the
// narrative generator.
func BuildNarrativeRequest(trip domain.TripRequest, selected []domain.Attraction) domain.NarrativeRequest {
	listing := make([]promptAttraction, 0, len(selected))
	for _, a := range selected {
		listing = append(listing, promptAttraction{
			Name:          a.Name,
			Description:   a.Description,
			EntryFee:      a.EntryFee,
			EffortScore:   a.EffortScore,
			EffortDetails: a.EffortDetails,
		})
	}
	// plain structs with string/number fields cannot fail to marshal
	listingJSON, _ := json.MarshalIndent(listing, "", "  ")

	p := trip.Profile
	var b strings.Builder
	fmt.Fprintf(&b, "You are an experienced, friendly travel agent planning a personalized trip to %s.\n\n", trip.Destination)
	b.WriteString("Traveler profile:\n")
	fmt.Fprintf(&b, "- Age group: %s\n", p.AgeGroup)
	fmt.Fprintf(&b, "- Travel style: %s\n", p.TravelStyle)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(p.Interests, ", "))
	fmt.Fprintf(&b, "- Activity level: %s\n", p.ActivityLevel)
	fmt.Fprintf(&b, "- Trip length: %d days\n", trip.Days)
	fmt.Fprintf(&b, "- Budget: $%s\n\n", strconv.FormatFloat(trip.Budget, 'f', -1, 64))
	b.WriteString("Attractions already chosen for this profile and budget:\n")
	b.Write(listingJSON)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Arrange these attractions into an enjoyable %d-day itinerary.\n", trip.Days)
	b.WriteString("- Give every day a creative, thematic title (for example 'Day 1: Gardens & Skyline Views').\n")
	b.WriteString("- Spread the attractions across the days in a sensible way and refer to each one by its exact name.\n")
	b.WriteString("- Write a short, engaging one-paragraph summary for every day.\n")
	b.WriteString("- Answer with a single JSON object that follows the given schema and nothing else: no prose, no markdown, no code fences.\n")

	return domain.NarrativeRequest{
		Prompt: b.String(),
		Schema: ItinerarySchema(trip.Destination, trip.Days),
	}
}

// ItinerarySchema is the output contract sent with every narrative request.
func ItinerarySchema(destination string, days int) *domain.Schema {
	return &domain.Schema{
		Type: domain.TypeObject,
		Properties: map[string]*domain.Schema{
			"itinerary_title": {
				Type:        domain.TypeString,
				Description: fmt.Sprintf("A catchy, creative title for the whole trip to %s.", destination),
			},
			"itinerary_details": {
				Type:        domain.TypeArray,
				Description: fmt.Sprintf("One entry per day of the %d-day trip.", days),
				Items: &domain.Schema{
					Type: domain.TypeObject,
					Properties: map[string]*domain.Schema{
						"day":     {Type: domain.TypeInteger, Description: "Day number, starting at 1."},
						"title":   {Type: domain.TypeString, Description: "A creative, thematic title for the day."},
						"summary": {Type: domain.TypeString, Description: "An engaging one-paragraph summary of the day."},
						"activities_names": {
							Type:        domain.TypeArray,
							Description: "Names of the attractions visited that day.",
							Items:       &domain.Schema{Type: domain.TypeString},
						},
					},
					Required: []string{"day", "title", "summary", "activities_names"},
				},
			},
		},
		Required: []string{"itinerary_title", "itinerary_details"},
	}
}

// responseContract is what a generated plan must satisfy before we use it:
// the top-level fields, and objects as day entries. Day fields may be missing.
var responseContract = map[string]any{
	"type":     "object",
	"required": []any{"itinerary_title", "itinerary_details"},
	"properties": map[string]any{
		"itinerary_title": map[string]any{"type": "string"},
		"itinerary_details": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"day":              map[string]any{"type": "integer"},
					"title":            map[string]any{"type": "string"},
					"summary":          map[string]any{"type": "string"},
					"activities_names": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
	},
}
