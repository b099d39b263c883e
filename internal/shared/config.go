package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	CatalogBackend string // memory | mysql
	MySQLDSN       string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	NarrativeProvider string // gemini | openai | textgen
	NarrativeTimeout  time.Duration
	NarrativeCache    bool
	GeminiKey         string
	GeminiModel       string
	OpenAIKey         string
	OpenAIModel       string
	OpenAIBase        string
	TextgenBase       string
	TextgenKey        string
	TextgenRPS        int

	WeatherDelay time.Duration

	SeedFile    string
	SeedWorkers int
}

// Load reads configuration from the environment. A .env file in the
// working directory, if any, fills in variables that are not already set.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		CatalogBackend: strings.ToLower(env("CATALOG_BACKEND", "memory")),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/itinerate?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		NarrativeProvider: strings.ToLower(env("NARRATIVE_PROVIDER", "gemini")),
		NarrativeTimeout:  time.Duration(atoi("NARRATIVE_TIMEOUT_SECONDS", 60)) * time.Second,
		NarrativeCache:    boolEnv("NARRATIVE_CACHE", false),
		GeminiKey:         env("GEMINI_API_KEY", ""),
		GeminiModel:       env("GEMINI_MODEL", ""),
		OpenAIKey:         env("OPENAI_API_KEY", ""),
		OpenAIModel:       env("OPENAI_MODEL", ""),
		OpenAIBase:        env("OPENAI_BASE_URL", ""),
		TextgenBase:       env("TEXTGEN_BASE_URL", ""),
		TextgenKey:        env("TEXTGEN_API_KEY", ""),
		TextgenRPS:        atoi("TEXTGEN_RPS", 5),

		WeatherDelay: time.Duration(atoi("WEATHER_DELAY_MS", 500)) * time.Millisecond,

		SeedFile:    env("SEED_FILE", ""),
		SeedWorkers: atoi("SEED_WORKERS", 8),
	}
	switch c.NarrativeProvider {
	case "gemini":
		if c.GeminiKey == "" {
			log.Warn().Msg("GEMINI_API_KEY is empty")
		}
	case "openai":
		if c.OpenAIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY is empty")
		}
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
		return def
	}
	return b
}
