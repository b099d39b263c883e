package main

import (
	"context"
	"database/sql"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"itinerate/internal/adapters/observability"
	redisad "itinerate/internal/adapters/redis"
	"itinerate/internal/app"
	"itinerate/internal/domain"
	"itinerate/internal/shared"
	"itinerate/internal/storage/memory"
	mysqlrepo "itinerate/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	raw := memory.DemoCatalog
	source := "built-in"
	if cfg.SeedFile != "" {
		b, err := os.ReadFile(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("read seed file failed")
		}
		raw, source = b, cfg.SeedFile
	}
	catalog, err := app.ParseCatalog(raw)
	if err != nil {
		log.Fatal().Err(err).Msg("parse catalog failed")
	}
	// validate everything up front so a bad file writes nothing
	dests := make([]string, 0, len(catalog))
	for dest, as := range catalog {
		if err := app.ValidateCatalog(dest, as); err != nil {
			log.Fatal().Err(err).Msg("catalog rejected")
		}
		dests = append(dests, dest)
	}
	sort.Strings(dests)

	log.Info().
		Str("source", source).
		Int("destinations", len(dests)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}
	loader := app.NewCatalogLoader(mysqlrepo.New(db), cache)

	workers := cfg.SeedWorkers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)

	for _, dest := range dests {
		for _, a := range catalog[dest] {
			// acquire before launching the goroutine; release inside it
			if err := sem.Acquire(ctx, 1); err != nil {
				log.Fatal().Err(err).Msg("semaphore acquire failed")
			}

			wg.Add(1)
			go func(dest string, a domain.Attraction) {
				defer wg.Done()
				defer sem.Release(1)

				if err := loader.LoadAttraction(ctx, dest, a); err != nil {
					failed.Add(1)
					log.Warn().Str("destination", dest).Str("name", a.Name).Err(err).Msg("seed failed")
					return
				}
				log.Debug().Str("destination", dest).Str("name", a.Name).Msg("seed ok")
			}(dest, a)
		}
	}
	wg.Wait()

	for _, dest := range dests {
		loader.Invalidate(ctx, dest)
	}
	if n := failed.Load(); n > 0 {
		log.Fatal().Int32("failed", n).Msg("seeding finished with errors")
	}
	log.Info().Msg("seeding completed")
}
