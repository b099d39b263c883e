package domain

// Attraction is a catalog entry. Name doubles as the join key with the
// narrative generator's output, so it must be unique within a destination.
type Attraction struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Tags            []string `json:"tags"`
	Description     string   `json:"description"`
	EntryFee        float64  `json:"entry_fee"`
	AvgTimeSpentHrs float64  `json:"avg_time_spent_hrs"`
	EffortScore     int      `json:"effort_score"` // 1..5
	EffortDetails   string   `json:"effort_details"`
}

// HasAnyTag reports whether a shares at least one tag with the given set.
func (a Attraction) HasAnyTag(set map[string]struct{}) bool {
	for _, t := range a.Tags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}
