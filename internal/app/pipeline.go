package app

import (
	"context"
	"fmt"
	"time"

	"itinerate/internal/domain"
)

// Outcome is a finished pipeline run.
type Outcome struct {
	Itinerary domain.ItineraryResponse
	Selected  []domain.Attraction
	Coverage  domain.Coverage
}

// Pipeline runs Filter -> Allocate -> Build Request -> Generate -> Reconcile
// for one trip. It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	catalog   domain.CatalogStore
	generator domain.NarrativeGenerator
	timeout   time.Duration

	// OnTransition, when set, is called on every state change.
	OnTransition func(from, to domain.Stage)
}

// NewPipeline wires a pipeline. timeout bounds the generator call; zero
// leaves it to the caller's context.
func NewPipeline(c domain.CatalogStore, g domain.NarrativeGenerator, timeout time.Duration) *Pipeline {
	return &Pipeline{catalog: c, generator: g, timeout: timeout}
}

func (p *Pipeline) Plan(ctx context.Context, trip domain.TripRequest) (Outcome, error) {
	state := domain.StageIdle
	move := func(to domain.Stage) {
		if p.OnTransition != nil {
			p.OnTransition(state, to)
		}
		state = to
	}
	fail := func(err error) (Outcome, error) {
		move(domain.StageFailed)
		return Outcome{}, err
	}

	if err := trip.Validate(); err != nil {
		return fail(err)
	}

	move(domain.StageFiltering)
	all, err := p.catalog.Attractions(ctx, trip.Destination)
	if err != nil {
		return fail(fmt.Errorf("load catalog for %q: %w", trip.Destination, err))
	}
	filtered := FilterByInterests(all, trip.Profile.Interests)

	move(domain.StageAllocating)
	selected := Allocate(filtered, trip.Days, trip.Budget)
	if len(selected) == 0 {
		return fail(&domain.PlanError{
			Kind:  domain.EmptySelection,
			Stage: domain.StageAllocating,
			Msg:   "could not find any suitable attractions for the given profile and budget",
		})
	}

	move(domain.StageRequestingNarrative)
	raw, err := p.generate(ctx, BuildNarrativeRequest(trip, selected))
	if err != nil {
		return fail(&domain.PlanError{
			Kind:  domain.NarrativeGenerationFailed,
			Stage: domain.StageRequestingNarrative,
			Msg:   "narrative generator call failed",
			Err:   err,
		})
	}

	move(domain.StageReconciling)
	plan, err := DecodeGeneratedPlan(raw)
	if err != nil {
		return fail(err)
	}

	out := Outcome{
		Itinerary: Reconcile(plan, selected),
		Selected:  selected,
		Coverage:  CheckCoverage(plan, selected),
	}
	move(domain.StageDone)
	return out, nil
}

// generate bounds the generator call by the narrative timeout even when the
// generator does not watch ctx. A late result is discarded.
func (p *Pipeline) generate(ctx context.Context, req domain.NarrativeRequest) ([]byte, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	type result struct {
		raw []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		raw, err := p.generator.Generate(ctx, req)
		done <- result{raw, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if ctxErr := ctx.Err(); ctxErr != nil {
			// report the deadline rather than whatever the transport made of it
			if r.err != nil {
				return nil, fmt.Errorf("%w: %v", ctxErr, r.err)
			}
			return nil, ctxErr
		}
		if r.err != nil {
			return nil, r.err
		}
		return r.raw, nil
	}
}
