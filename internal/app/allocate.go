package app

import (
	"sort"

	"itinerate/internal/domain"
)

// ActivitiesPerDay is the target density used to cap a selection.
const ActivitiesPerDay = 2

// Allocate picks a cheapest-first subset of filtered that fits budget and
// holds at most days*ActivitiesPerDay entries. One greedy pass, no
// backtracking. Equal fees keep their input order. filtered is not modified.
func Allocate(filtered []domain.Attraction, days int, budget float64) []domain.Attraction {
	if days > len(filtered) {
		days = len(filtered)
	}
	maxActivities := days * ActivitiesPerDay
	if maxActivities <= 0 || len(filtered) == 0 {
		return []domain.Attraction{}
	}

	sorted := make([]domain.Attraction, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].EntryFee < sorted[j].EntryFee })

	out := make([]domain.Attraction, 0, min(maxActivities, len(sorted)))
	spent := 0.0
	for _, a := range sorted {
		if len(out) >= maxActivities {
			break
		}
		if spent+a.EntryFee <= budget {
			out = append(out, a)
			spent += a.EntryFee
		}
	}
	return out
}

func totalFees(as []domain.Attraction) float64 {
	var sum float64
	for _, a := range as {
		sum += a.EntryFee
	}
	return sum
}
