package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"animal-care-tracker/internal/adapters/capabilities/plansfeatures"
	notifymem "animal-care-tracker/internal/adapters/notify/memory"
	"animal-care-tracker/internal/adapters/notify/webhook"
	mem "animal-care-tracker/internal/adapters/storage/memory"
	pg "animal-care-tracker/internal/adapters/storage/postgres"
	"animal-care-tracker/internal/adapters/storage/sqlite"
	"animal-care-tracker/internal/config"
	"animal-care-tracker/internal/domain/animals"
	"animal-care-tracker/internal/domain/care"
	"animal-care-tracker/internal/domain/cycles"
	"animal-care-tracker/internal/domain/health"
	"animal-care-tracker/internal/platform/logger"
	"animal-care-tracker/internal/ports/notify"
	"animal-care-tracker/internal/reminder"
	"animal-care-tracker/internal/router"
	"animal-care-tracker/internal/store"
)

func main() {
	log := logger.NewFromEnv()

	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		configDir = "./config"
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		log.Error("config load failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	repos, cleanup, err := buildRepos(cfg)
	if err != nil {
		log.Error("storage init failed", map[string]any{"backend": cfg.Storage.Backend, "err": err.Error()})
		os.Exit(1)
	}
	defer cleanup()

	notifier, err := buildNotifier(cfg)
	if err != nil {
		log.Error("notifier init failed", map[string]any{"kind": cfg.Notifier.Kind, "err": err.Error()})
		os.Exit(1)
	}

	// Capabilities (billing). Sin upstream configurado no hay límite de
	// registro: el tier gratuito solo existe cuando hay quien lo cobre.
	var animalsSvc *animals.Service
	if cfg.Plans.BaseURL != "" {
		plansClient, err := plansfeatures.NewClient(plansfeatures.Config{
			BaseURL: cfg.Plans.BaseURL,
			APIKey:  cfg.Plans.APIKey,
		})
		if err != nil {
			log.Error("plans-features init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		animalsSvc = animals.NewService(repos.animals, plansfeatures.NewResolver(plansClient))
	} else {
		animalsSvc = animals.NewService(repos.animals, nil)
	}

	cyclesSvc := cycles.NewService(repos.cycles, animalsSvc)
	healthSvc := health.NewService(repos.health, repos.weights, animalsSvc)
	careSvc := care.NewService(repos.care, animalsSvc)

	rem := reminder.NewCoordinator(notifier, log)
	defer rem.Close()

	st := store.New(animalsSvc, cyclesSvc, healthSvc, careSvc, rem)

	r := router.NewRouter(router.Options{
		Store:     st,
		Reminders: rem,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", map[string]any{
			"addr":    cfg.Addr,
			"storage": cfg.Storage.Backend,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"err": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown incomplete", map[string]any{"err": err.Error()})
	}
	log.Info("server stopped", nil)
}

type repoSet struct {
	animals animals.Repository
	cycles  cycles.Repository
	health  health.Repository
	weights health.WeightRepository
	care    care.Repository
}

func buildRepos(cfg config.Config) (repoSet, func(), error) {
	switch cfg.Storage.Backend {
	case "memory":
		return repoSet{
			animals: mem.NewAnimalsRepo(),
			cycles:  mem.NewCyclesRepo(),
			health:  mem.NewHealthRepo(),
			weights: mem.NewWeightsRepo(),
			care:    mem.NewCareRepo(),
		}, func() {}, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath())
		if err != nil {
			return repoSet{}, nil, err
		}
		return repoSet{
			animals: sqlite.NewAnimalsRepo(db),
			cycles:  sqlite.NewCyclesRepo(db),
			health:  sqlite.NewHealthRepo(db),
			weights: sqlite.NewWeightsRepo(db),
			care:    sqlite.NewCareRepo(db),
		}, func() { _ = db.Close() }, nil

	case "postgres":
		db, err := pg.Open(cfg.Storage.PostgresDSN)
		if err != nil {
			return repoSet{}, nil, err
		}
		if err := pg.EnsureSchema(context.Background(), db); err != nil {
			_ = db.Close()
			return repoSet{}, nil, err
		}
		return repoSet{
			animals: pg.NewAnimalsRepo(db),
			cycles:  pg.NewCyclesRepo(db),
			health:  pg.NewHealthRepo(db),
			weights: pg.NewWeightsRepo(db),
			care:    pg.NewCareRepo(db),
		}, func() { _ = db.Close() }, nil
	}

	return repoSet{}, nil, errors.New("unknown storage backend " + cfg.Storage.Backend)
}

func buildNotifier(cfg config.Config) (notify.Notifier, error) {
	if cfg.Notifier.Kind == "webhook" {
		return webhook.New(cfg.Notifier.WebhookURL)
	}
	return notifymem.NewNotifier(), nil
}
