package domain

import "context"

// CatalogStore is read-only after construction. Unknown destinations yield
// an empty slice and a nil error.
type CatalogStore interface {
	Attractions(ctx context.Context, destination string) ([]Attraction, error)
	Destinations(ctx context.Context) ([]string, error)
}

type CatalogWriter interface {
	UpsertAttraction(ctx context.Context, destination string, a Attraction) error
}

// NarrativeGenerator turns a prompt and output contract into raw JSON text.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req NarrativeRequest) ([]byte, error)
}

// WeatherProvider may return an empty forecast; that is not an error.
type WeatherProvider interface {
	Forecast(ctx context.Context, destination string, days int) ([]DailyForecast, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
