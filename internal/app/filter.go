package app

import "itinerate/internal/domain"

// FilterByInterests keeps attractions sharing at least one tag with
// interests, in source order. No interests means no matches.
func FilterByInterests(all []domain.Attraction, interests []string) []domain.Attraction {
	if len(interests) == 0 || len(all) == 0 {
		return []domain.Attraction{}
	}
	set := make(map[string]struct{}, len(interests))
	for _, in := range interests {
		set[in] = struct{}{}
	}
	out := make([]domain.Attraction, 0, len(all))
	for _, a := range all {
		if a.HasAnyTag(set) {
			out = append(out, a)
		}
	}
	return out
}
