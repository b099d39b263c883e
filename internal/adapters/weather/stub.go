// Package weather serves canned forecasts for destinations we have mock data for.
package weather

import (
	"context"
	"strings"
	"time"

	"itinerate/internal/adapters/observability"
	"itinerate/internal/domain"
)

var singapore = []domain.DailyForecast{
	{HighTemp: 32, LowTemp: 26, Condition: domain.Showers},
	{HighTemp: 33, LowTemp: 27, Condition: domain.Thunderstorm},
	{HighTemp: 31, LowTemp: 26, Condition: domain.Cloudy},
	{HighTemp: 32, LowTemp: 26, Condition: domain.Showers},
	{HighTemp: 33, LowTemp: 27, Condition: domain.Sunny},
	{HighTemp: 30, LowTemp: 25, Condition: domain.Rain},
	{HighTemp: 31, LowTemp: 26, Condition: domain.Cloudy},
	{HighTemp: 32, LowTemp: 26, Condition: domain.Thunderstorm},
	{HighTemp: 33, LowTemp: 27, Condition: domain.Sunny},
	{HighTemp: 31, LowTemp: 26, Condition: domain.Showers},
	{HighTemp: 32, LowTemp: 26, Condition: domain.Cloudy},
	{HighTemp: 30, LowTemp: 25, Condition: domain.Rain},
	{HighTemp: 33, LowTemp: 27, Condition: domain.Thunderstorm},
	{HighTemp: 32, LowTemp: 26, Condition: domain.Sunny},
}

// MaxDays caps a single forecast.
const MaxDays = 30

// Stub implements domain.WeatherProvider. Delay simulates a remote call.
type Stub struct {
	Delay time.Duration
	data  map[string][]domain.DailyForecast
}

func NewStub(delay time.Duration) *Stub {
	return &Stub{Delay: delay, data: map[string][]domain.DailyForecast{"singapore": singapore}}
}

// Forecast returns days entries, cycling the canned series when days runs
// past it, and stops at MaxDays. Unknown destinations get an empty forecast.
func (s *Stub) Forecast(ctx context.Context, destination string, days int) ([]domain.DailyForecast, error) {
	start := time.Now()
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			observability.ObserveExternal("weather", "forecast", 0, time.Since(start))
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	observability.ObserveExternal("weather", "forecast", 200, time.Since(start))

	series := s.data[strings.ToLower(strings.TrimSpace(destination))]
	if len(series) == 0 || days < 1 {
		return []domain.DailyForecast{}, nil
	}
	out := make([]domain.DailyForecast, min(days, MaxDays))
	for i := range out {
		f := series[i%len(series)]
		f.Day = i + 1
		out[i] = f
	}
	return out, nil
}
