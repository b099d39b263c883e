package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"itinerate/internal/adapters/gemini"
	server "itinerate/internal/adapters/http_server"
	"itinerate/internal/adapters/observability"
	"itinerate/internal/adapters/openai"
	redisad "itinerate/internal/adapters/redis"
	"itinerate/internal/adapters/textgen"
	"itinerate/internal/adapters/weather"
	"itinerate/internal/app"
	"itinerate/internal/domain"
	"itinerate/internal/shared"
	"itinerate/internal/storage/memory"
	mysqlrepo "itinerate/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// cache is optional; without it every read goes to the store
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		cache = rc
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
	}

	store, err := openCatalog(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog init failed")
	}
	catalog := app.NewCatalogQueries(store, cache, cfg.CacheTTL)

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.NarrativeProvider).Msg("narrative generator init failed")
	}
	if cfg.NarrativeCache && cache != nil {
		gen = app.NewCachedGenerator(gen, cache, cfg.CacheTTL)
	}

	wx := weather.NewStub(cfg.WeatherDelay)
	pipeline := app.NewPipeline(catalog, gen, cfg.NarrativeTimeout)
	pipeline.OnTransition = func(from, to domain.Stage) {
		log.Debug().Str("from", string(from)).Str("to", string(to)).Msg("pipeline transition")
	}
	planner := app.NewPlanner(pipeline, wx)

	// http
	srv := server.New(cfg.NarrativeTimeout + 10*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Catalog: catalog, Planner: planner, Weather: wx})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("catalog", cfg.CatalogBackend).
		Str("provider", cfg.NarrativeProvider).
		Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

func openCatalog(cfg shared.Config) (domain.CatalogStore, error) {
	switch cfg.CatalogBackend {
	case "memory":
		cat, err := app.ParseCatalog(memory.DemoCatalog)
		if err != nil {
			return nil, err
		}
		for dest, as := range cat {
			if err := app.ValidateCatalog(dest, as); err != nil {
				return nil, err
			}
		}
		log.Info().Int("destinations", len(cat)).Msg("using built-in catalog")
		return memory.New(cat), nil
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("db.Ping: %w", err)
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), nil
	default:
		return nil, fmt.Errorf("unknown CATALOG_BACKEND %q", cfg.CatalogBackend)
	}
}

func newGenerator(ctx context.Context, cfg shared.Config) (domain.NarrativeGenerator, error) {
	switch cfg.NarrativeProvider {
	case "gemini":
		return gemini.New(ctx, cfg.GeminiKey, cfg.GeminiModel)
	case "openai":
		return openai.New(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBase)
	case "textgen":
		return textgen.New(cfg.TextgenBase, cfg.TextgenKey, cfg.TextgenRPS)
	default:
		return nil, fmt.Errorf("unknown NARRATIVE_PROVIDER %q", cfg.NarrativeProvider)
	}
}
