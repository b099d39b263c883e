package app_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerate/internal/app"
	"itinerate/internal/domain"
)

func sumFees(as []domain.Attraction) float64 {
	var s float64
	for _, a := range as {
		s += a.EntryFee
	}
	return s
}

func TestAllocate_CheapestFirstWithinBudget(t *testing.T) {
	filtered := app.FilterByInterests(demoAttractions(t), []string{"nature", "culture"})
	got := app.Allocate(filtered, 3, 100)

	assert.Equal(t, []string{
		"Haji Lane",
		"Sentosa Island Beaches",
		"ArtScience Museum",
		"Marina Bay Sands Skypark",
		"Gardens by the Bay",
	}, names(got))
	assert.InDelta(t, 73.0, sumFees(got), 1e-9)
}

func TestAllocate_CapIsTwoPerDay(t *testing.T) {
	filtered := app.FilterByInterests(demoAttractions(t), []string{"nature", "culture"})
	got := app.Allocate(filtered, 1, 1000)
	assert.Equal(t, []string{"Haji Lane", "Sentosa Island Beaches"}, names(got))
}

func TestAllocate_RejectsWhatWouldOverrun(t *testing.T) {
	in := []domain.Attraction{
		attraction(1, "a", 10),
		attraction(2, "b", 50),
		attraction(3, "c", 60),
	}
	// 10 fits, 50 would reach 60 > 55, 60 would reach 70 > 55
	got := app.Allocate(in, 5, 55)
	assert.Equal(t, []string{"a"}, names(got))

	got = app.Allocate(in, 5, 60)
	assert.Equal(t, []string{"a", "b"}, names(got))
}

func TestAllocate_ZeroBudgetTakesFreeOnly(t *testing.T) {
	got := app.Allocate(demoAttractions(t), 4, 0)
	assert.Equal(t, []string{"Haji Lane", "Sentosa Island Beaches"}, names(got))
}

func TestAllocate_EmptyCases(t *testing.T) {
	assert.Empty(t, app.Allocate(nil, 3, 100))
	assert.Empty(t, app.Allocate(demoAttractions(t), 0, 100))
	assert.Empty(t, app.Allocate([]domain.Attraction{attraction(1, "x", 5)}, 2, 4.99))
	assert.NotNil(t, app.Allocate(nil, 3, 100))
}

func TestAllocate_HugeDayCountDoesNotOverflow(t *testing.T) {
	got := app.Allocate(demoAttractions(t), math.MaxInt, 1000)
	assert.Len(t, got, len(demoAttractions(t)))
}

func TestAllocate_TiesKeepInputOrder(t *testing.T) {
	in := []domain.Attraction{
		attraction(1, "first", 5),
		attraction(2, "second", 5),
		attraction(3, "cheap", 1),
		attraction(4, "third", 5),
	}
	got := app.Allocate(in, 10, 100)
	assert.Equal(t, []string{"cheap", "first", "second", "third"}, names(got))
}

func TestAllocate_DoesNotMutateInput(t *testing.T) {
	in := []domain.Attraction{attraction(1, "b", 9), attraction(2, "a", 1)}
	before := append([]domain.Attraction(nil), in...)
	_ = app.Allocate(in, 2, 100)
	assert.Equal(t, before, in)
}

func TestAllocate_Properties(t *testing.T) {
	all := demoAttractions(t)
	for days := 1; days <= 5; days++ {
		for _, budget := range []float64{0, 18.99, 19, 45, 73, 100, 200, 1e6} {
			got := app.Allocate(all, days, budget)
			require.LessOrEqual(t, sumFees(got), budget)
			require.LessOrEqual(t, len(got), days*app.ActivitiesPerDay)
			for i := 1; i < len(got); i++ {
				require.LessOrEqual(t, got[i-1].EntryFee, got[i].EntryFee)
			}
			// deterministic
			require.Equal(t, got, app.Allocate(all, days, budget))
		}
	}
}
