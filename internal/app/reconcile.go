package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"itinerate/internal/domain"
)

var contractLoader = gojsonschema.NewGoLoader(responseContract)

// DecodeGeneratedPlan parses raw generator output and checks its shape.
// Any parse or shape failure is a MalformedGeneratorResponse.
func DecodeGeneratedPlan(raw []byte) (domain.GeneratedPlan, error) {
	malformed := func(msg string, err error) error {
		return &domain.PlanError{Kind: domain.MalformedGeneratorResponse, Stage: domain.StageReconciling, Msg: msg, Err: err}
	}

	trimmed := stripCodeFence(raw)
	if !json.Valid(trimmed) {
		return domain.GeneratedPlan{}, malformed("generator output is not valid JSON", nil)
	}

	res, err := gojsonschema.Validate(contractLoader, gojsonschema.NewBytesLoader(trimmed))
	if err != nil {
		return domain.GeneratedPlan{}, malformed("generator output could not be checked", err)
	}
	if !res.Valid() {
		errs := make([]string, len(res.Errors()))
		for i, desc := range res.Errors() {
			errs[i] = desc.String()
		}
		return domain.GeneratedPlan{}, malformed(fmt.Sprintf("generator output violates contract: %s", strings.Join(errs, "; ")), nil)
	}

	var plan domain.GeneratedPlan
	if err := json.Unmarshal(trimmed, &plan); err != nil {
		return domain.GeneratedPlan{}, malformed("decode generator output", err)
	}
	return plan, nil
}

// stripCodeFence drops a surrounding ```json fence some models add despite
// being told not to.
func stripCodeFence(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return []byte(s)
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}

// Reconcile joins the generator's name-only day grouping back onto the
// selected attractions and recomputes costs. Names that match nothing are
// dropped silently; a day left with no activities is still kept. Day order
// is whatever the generator returned.
func Reconcile(plan domain.GeneratedPlan, selected []domain.Attraction) domain.ItineraryResponse {
	byName := make(map[string]domain.Attraction, len(selected))
	for _, a := range selected {
		byName[a.Name] = a // last one wins on duplicate names
	}

	out := domain.ItineraryResponse{
		Title:   plan.Title,
		Details: make([]domain.DayPlan, 0, len(plan.Details)),
	}
	for _, d := range plan.Details {
		day := domain.DayPlan{
			Day:        d.Day,
			Title:      d.Title,
			Summary:    d.Summary,
			Activities: make([]domain.Attraction, 0, len(d.ActivityNames)),
		}
		for _, name := range d.ActivityNames {
			if a, ok := byName[name]; ok {
				day.Activities = append(day.Activities, a)
			}
		}
		day.EstimatedCost = totalFees(day.Activities)
		out.TotalEstimatedCost += day.EstimatedCost
		out.Details = append(out.Details, day)
	}
	return out
}

// CheckCoverage lists selected attractions the plan never used, names it
// used more than once and names that match no selected attraction.
func CheckCoverage(plan domain.GeneratedPlan, selected []domain.Attraction) domain.Coverage {
	known := make(map[string]struct{}, len(selected))
	for _, a := range selected {
		known[a.Name] = struct{}{}
	}
	seen := make(map[string]int)
	var cov domain.Coverage
	for _, d := range plan.Details {
		for _, name := range d.ActivityNames {
			if _, ok := known[name]; !ok {
				cov.Unknown = append(cov.Unknown, name)
				continue
			}
			seen[name]++
			if seen[name] == 2 {
				cov.Duplicated = append(cov.Duplicated, name)
			}
		}
	}
	for _, a := range selected {
		if seen[a.Name] == 0 {
			cov.Omitted = append(cov.Omitted, a.Name)
		}
	}
	return cov
}
