// Package main is the entry point for the auspicious-time scoring
// service. It scores the favorability of an instant for an activity
// from planetary positions, finds stable intervals and alternative
// times around it, and serves the result over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/desimealsnow/auspicious-time/internal/alternatives"
	"github.com/desimealsnow/auspicious-time/internal/cache"
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/config"
	"github.com/desimealsnow/auspicious-time/internal/database"
	"github.com/desimealsnow/auspicious-time/internal/ephemeris"
	"github.com/desimealsnow/auspicious-time/internal/scoring"
	"github.com/desimealsnow/auspicious-time/internal/scoring/activity"
	"github.com/desimealsnow/auspicious-time/internal/server"
	"github.com/desimealsnow/auspicious-time/internal/stabilize"
	"github.com/desimealsnow/auspicious-time/pkg/logger"
)

// main orchestrates the startup sequence:
// 1. Load configuration from environment variables
// 2. Initialize structured logging
// 3. Construct the ephemeris oracle, chart builder and scoring engine
// 4. Load activity tables (optional YAML overrides)
// 5. Open the score cache database and schedule its cleanup
// 6. Start the HTTP server
// 7. Wait for shutdown signal and drain gracefully
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting auspicious-time")

	oracle, err := ephemeris.NewOracle(ephemeris.Config{
		EphemerisPath: cfg.EphemerisPath,
		SiderealMode:  cfg.SiderealMode,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ephemeris oracle")
	}

	tables := activity.Defaults()
	if cfg.ActivityFile != "" {
		tables, err = activity.Load(cfg.ActivityFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.ActivityFile).Msg("Failed to load activity tables")
		}
		log.Info().Str("file", cfg.ActivityFile).Msg("Activity tables loaded")
	}

	builder := chart.NewBuilder(oracle, log)
	engine := scoring.NewEngine(builder, tables, log)

	stab := stabilize.New(stabilize.DefaultConfig(), log)
	finder := alternatives.NewFinder(engine, stab, alternatives.Config{
		DenseWindow: time.Duration(cfg.DenseWindowHours) * time.Hour,
		DenseStep:   time.Duration(cfg.DenseStepMinutes) * time.Minute,
		HorizonDays: cfg.SparseHorizonDays,
		Workers:     cfg.SearchWorkers,
	}, log)

	// Score cache database. Scores are deterministic per config version,
	// so the cache only trades recomputation for disk.
	scoreDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "scores.db"),
		Profile: database.ProfileCache,
		Name:    "scores",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open score cache database")
	}
	defer scoreDB.Close()
	log.Info().Str("db", scoreDB.Name()).Str("path", scoreDB.Path()).Msg("Score cache database ready")

	repo, err := cache.NewRepository(scoreDB.Conn())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize score cache")
	}

	// Hourly cleanup keeps the cache table and its WAL bounded.
	cleanup := cron.New()
	if _, err := cleanup.AddJob("@hourly", cache.NewCleanupJob(repo, scoreDB, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule cache cleanup")
	}
	cleanup.Start()
	log.Info().Msg("Score cache cleanup scheduled")

	srv := server.New(server.Config{
		Config: cfg,
		Engine: engine,
		Finder: finder,
		Cache:  repo,
		DB:     scoreDB,
		Log:    log,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	cronCtx := cleanup.Stop()
	<-cronCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
