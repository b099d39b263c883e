package domain

import (
	"fmt"
	"math"
)

// MaxTripDays is the longest trip the planner accepts.
const MaxTripDays = 14

type TravelerProfile struct {
	AgeGroup      string   `json:"age_group"`
	TravelStyle   string   `json:"travel_style"`
	Interests     []string `json:"interests"`
	ActivityLevel string   `json:"activity_level"`
}

type TripRequest struct {
	Destination string          `json:"destination"`
	Days        int             `json:"days"`
	Budget      float64         `json:"budget"`
	Profile     TravelerProfile `json:"profile"`
}

// Validate rejects trips the allocator cannot run on.
func (t TripRequest) Validate() error {
	if t.Days < 1 || t.Days > MaxTripDays {
		return &PlanError{Kind: InvalidTripParameters, Stage: StageIdle,
			Msg: fmt.Sprintf("days must be between 1 and %d, got %d", MaxTripDays, t.Days)}
	}
	if t.Budget < 0 || math.IsNaN(t.Budget) || math.IsInf(t.Budget, 0) {
		return &PlanError{Kind: InvalidTripParameters, Stage: StageIdle,
			Msg: fmt.Sprintf("budget must be a non-negative number, got %v", t.Budget)}
	}
	return nil
}
