package domain

// DayPlan.EstimatedCost is always the sum of its activities' entry fees.
type DayPlan struct {
	Day           int          `json:"day"`
	Title         string       `json:"title"`
	Summary       string       `json:"summary,omitempty"`
	Activities    []Attraction `json:"activities"`
	EstimatedCost float64      `json:"estimated_cost"`
}

// ItineraryResponse.TotalEstimatedCost is always the sum of the day costs.
type ItineraryResponse struct {
	Title              string    `json:"itinerary_title"`
	TotalEstimatedCost float64   `json:"total_estimated_cost"`
	Details            []DayPlan `json:"itinerary_details"`
}

// GeneratedPlan is what the narrative generator hands back: days reference
// attractions by name only.
type GeneratedPlan struct {
	Title   string         `json:"itinerary_title"`
	Details []GeneratedDay `json:"itinerary_details"`
}

type GeneratedDay struct {
	Day           int      `json:"day"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	ActivityNames []string `json:"activities_names"`
}

// Coverage reports how faithfully a generated plan used the selection.
// Informational only; reconciliation never acts on it.
type Coverage struct {
	Omitted    []string `json:"omitted,omitempty"`
	Duplicated []string `json:"duplicated,omitempty"`
	Unknown    []string `json:"unknown,omitempty"`
}

func (c Coverage) Complete() bool {
	return len(c.Omitted) == 0 && len(c.Duplicated) == 0 && len(c.Unknown) == 0
}
