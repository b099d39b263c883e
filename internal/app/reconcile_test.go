package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerate/internal/app"
	"itinerate/internal/domain"
)

func selectedA(t *testing.T) []domain.Attraction {
	t.Helper()
	return app.Allocate(app.FilterByInterests(demoAttractions(t), []string{"nature", "culture"}), 3, 100)
}

const planA = `{
  "itinerary_title": "Gardens, Lanes and Beaches",
  "itinerary_details": [
    {"day": 1, "title": "Day 1: Old Streets", "summary": "s1", "activities_names": ["Haji Lane", "ArtScience Museum"]},
    {"day": 2, "title": "Day 2: Skyline", "summary": "s2", "activities_names": ["Marina Bay Sands Skypark", "Gardens by the Bay"]},
    {"day": 3, "title": "Day 3: Beach", "summary": "s3", "activities_names": ["Sentosa Island Beaches"]}
  ]
}`

func TestDecodeAndReconcile_Costs(t *testing.T) {
	sel := selectedA(t)
	plan, err := app.DecodeGeneratedPlan([]byte(planA))
	require.NoError(t, err)

	out := app.Reconcile(plan, sel)
	assert.Equal(t, "Gardens, Lanes and Beaches", out.Title)
	require.Len(t, out.Details, 3)
	assert.InDelta(t, 19.0, out.Details[0].EstimatedCost, 1e-9)
	assert.InDelta(t, 54.0, out.Details[1].EstimatedCost, 1e-9)
	assert.InDelta(t, 0.0, out.Details[2].EstimatedCost, 1e-9)
	assert.InDelta(t, 73.0, out.TotalEstimatedCost, 1e-9)
	assert.Equal(t, "s2", out.Details[1].Summary)

	// activities carry the full catalog record, not just the name
	act := out.Details[1].Activities[1]
	assert.Equal(t, "Gardens by the Bay", act.Name)
	assert.Contains(t, act.Tags, "nature")
	assert.Equal(t, 3, act.EffortScore)

	var total float64
	for _, d := range out.Details {
		assert.InDelta(t, sumFees(d.Activities), d.EstimatedCost, 1e-9)
		total += d.EstimatedCost
	}
	assert.InDelta(t, total, out.TotalEstimatedCost, 1e-9)
}

func TestReconcile_DropsUnknownKeepsEmptyDay(t *testing.T) {
	sel := selectedA(t)
	plan := domain.GeneratedPlan{
		Title: "t",
		Details: []domain.GeneratedDay{
			{Day: 1, Title: "one", ActivityNames: []string{"Haji Lane", "Imaginary Tower"}},
			{Day: 2, Title: "two", ActivityNames: []string{"Nowhere"}},
		},
	}
	out := app.Reconcile(plan, sel)
	require.Len(t, out.Details, 2)
	assert.Equal(t, []string{"Haji Lane"}, names(out.Details[0].Activities))
	assert.NotNil(t, out.Details[1].Activities)
	assert.Empty(t, out.Details[1].Activities)
	assert.Zero(t, out.Details[1].EstimatedCost)
	assert.Zero(t, out.TotalEstimatedCost)
}

func TestReconcile_KeepsGeneratorDayOrder(t *testing.T) {
	plan := domain.GeneratedPlan{Details: []domain.GeneratedDay{
		{Day: 3, ActivityNames: []string{"Gardens by the Bay"}},
		{Day: 1, ActivityNames: []string{"Haji Lane"}},
	}}
	out := app.Reconcile(plan, selectedA(t))
	assert.Equal(t, 3, out.Details[0].Day)
	assert.Equal(t, 1, out.Details[1].Day)
}

func TestReconcile_RepeatedNameCountsTwice(t *testing.T) {
	plan := domain.GeneratedPlan{Details: []domain.GeneratedDay{
		{Day: 1, ActivityNames: []string{"Gardens by the Bay"}},
		{Day: 2, ActivityNames: []string{"Gardens by the Bay"}},
	}}
	out := app.Reconcile(plan, selectedA(t))
	assert.InDelta(t, 56.0, out.TotalEstimatedCost, 1e-9)
}

func TestReconcile_NoDays(t *testing.T) {
	out := app.Reconcile(domain.GeneratedPlan{Title: "t"}, selectedA(t))
	assert.NotNil(t, out.Details)
	assert.Empty(t, out.Details)
	assert.Zero(t, out.TotalEstimatedCost)
}

func TestDecodeGeneratedPlan_Tolerant(t *testing.T) {
	// missing per-day fields decode as zero values
	plan, err := app.DecodeGeneratedPlan([]byte(`{"itinerary_title":"t","itinerary_details":[{"day":1}]}`))
	require.NoError(t, err)
	require.Len(t, plan.Details, 1)
	assert.Empty(t, plan.Details[0].ActivityNames)

	// extra fields are ignored
	_, err = app.DecodeGeneratedPlan([]byte(`{"itinerary_title":"t","itinerary_details":[],"mood":"sunny"}`))
	assert.NoError(t, err)

	// a markdown fence around the object is tolerated
	plan, err = app.DecodeGeneratedPlan([]byte("```json\n" + planA + "\n```"))
	require.NoError(t, err)
	assert.Len(t, plan.Details, 3)
}

func TestDecodeGeneratedPlan_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `here is your plan!`,
		"truncated":         `{"itinerary_title":"t","itinerary_details":[`,
		"empty":             ``,
		"array":             `[]`,
		"missing title":     `{"itinerary_details":[]}`,
		"missing details":   `{"itinerary_title":"t"}`,
		"title not string":  `{"itinerary_title":1,"itinerary_details":[]}`,
		"details not array": `{"itinerary_title":"t","itinerary_details":{}}`,
		"day not object":    `{"itinerary_title":"t","itinerary_details":["day one"]}`,
		"day not integer":   `{"itinerary_title":"t","itinerary_details":[{"day":"one"}]}`,
		"names not strings": `{"itinerary_title":"t","itinerary_details":[{"day":1,"activities_names":[1,2]}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := app.DecodeGeneratedPlan([]byte(raw))
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.MalformedGeneratorResponse), "got %v", err)

			var pe *domain.PlanError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, domain.StageReconciling, pe.Stage)
		})
	}
}

func TestCheckCoverage(t *testing.T) {
	sel := selectedA(t)
	plan, err := app.DecodeGeneratedPlan([]byte(planA))
	require.NoError(t, err)
	assert.True(t, app.CheckCoverage(plan, sel).Complete())

	plan = domain.GeneratedPlan{Details: []domain.GeneratedDay{
		{Day: 1, ActivityNames: []string{"Haji Lane", "Haji Lane", "Imaginary Tower"}},
		{Day: 2, ActivityNames: []string{"Gardens by the Bay", "Haji Lane"}},
	}}
	cov := app.CheckCoverage(plan, sel)
	assert.False(t, cov.Complete())
	assert.Equal(t, []string{"Haji Lane"}, cov.Duplicated)
	assert.Equal(t, []string{"Imaginary Tower"}, cov.Unknown)
	assert.Equal(t, []string{"Sentosa Island Beaches", "ArtScience Museum", "Marina Bay Sands Skypark"}, cov.Omitted)
}
