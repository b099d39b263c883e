package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"itinerate/internal/domain"
)

// TripPlan is everything the API returns for one trip request.
type TripPlan struct {
	Itinerary domain.ItineraryResponse `json:"itinerary"`
	Forecast  []domain.DailyForecast   `json:"forecast"`
	Coverage  domain.Coverage          `json:"coverage"`

	// Selected is how many attractions the allocator picked.
	Selected int `json:"-"`
}

// Planner runs the itinerary pipeline and the forecast lookup side by side.
type Planner struct {
	pipeline *Pipeline
	weather  domain.WeatherProvider
}

func NewPlanner(p *Pipeline, w domain.WeatherProvider) *Planner {
	return &Planner{pipeline: p, weather: w}
}

// Plan fails only if the pipeline fails; a forecast error leaves the
// forecast empty.
func (s *Planner) Plan(ctx context.Context, trip domain.TripRequest) (TripPlan, error) {
	var (
		out      Outcome
		forecast []domain.DailyForecast
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out, err = s.pipeline.Plan(gctx, trip)
		return err
	})
	if s.weather != nil && trip.Days > 0 {
		g.Go(func() error {
			fc, err := s.weather.Forecast(gctx, trip.Destination, trip.Days)
			if err != nil {
				log.Warn().Err(err).Str("destination", trip.Destination).Msg("forecast unavailable")
				return nil
			}
			forecast = fc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TripPlan{}, err
	}
	if forecast == nil {
		forecast = []domain.DailyForecast{}
	}
	return TripPlan{Itinerary: out.Itinerary, Forecast: forecast, Coverage: out.Coverage, Selected: len(out.Selected)}, nil
}
