package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/alerts"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/analysis"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/api"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/config"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/logging"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/metrics"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/positions"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/prediction"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/server"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/teams"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "gameday-plus",
	})

	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	roster := teams.DefaultRoster()
	if cfg.RosterPath != "" {
		loaded, err := teams.LoadRoster(cfg.RosterPath)
		if err != nil {
			logger.Fatalf("Loading roster: %v", err)
		}
		roster = loaded
	}

	// Initialize database
	var db *positions.DB
	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			logger.WithError(err).Warn("DB disabled")
		} else if opened, err := positions.NewDB(cfg.DBPath); err != nil {
			logger.WithError(err).Warn("DB disabled")
		} else {
			db = opened
			defer db.Close()
		}
	}

	m := metrics.New()
	notifier := alerts.NewNotifier(cfg.AlertCooldown, logger)
	normalizer := &prediction.Normalizer{
		Roster: roster,
		Analysis: analysis.Config{
			EVThreshold:   cfg.EVThreshold,
			KellyFraction: cfg.KellyFraction,
			Bankroll:      cfg.Bankroll,
			MaxBet:        cfg.MaxBet,
		},
		DefaultStake:  cfg.DefaultStake,
		SpreadStdDev:  odds.CFBSpreadStdDev,
		MaxOddsAgeSec: cfg.MaxOddsAgeSec,
	}

	var predictor *api.PredictorClient
	if cfg.PredictorURL != "" {
		predictor = api.NewPredictorClient(cfg.PredictorURL, cfg.PredictorAPIKey)
	}

	storage := config.FormatStorage(cfg.DBPath)
	if cfg.DBPath != "" && db == nil {
		storage = "disabled"
	}
	notifier.LogStartup(logrus.Fields{
		"port":       cfg.Port,
		"teams":      len(roster),
		"db":         storage,
		"ev":         cfg.EVThreshold,
		"kelly":      cfg.KellyFraction,
		"bankroll":   cfg.Bankroll,
		"stake":      cfg.DefaultStake,
		"rate_limit": cfg.RateLimitRPS,
		"predictor":  cfg.PredictorURL != "",
	})

	srv := server.New(server.Options{
		Addr:            ":" + cfg.Port,
		Roster:          roster,
		Normalizer:      normalizer,
		Bets:            db,
		Predictor:       predictor,
		Notifier:        notifier,
		Metrics:         m,
		Logger:          logger,
		RateLimitRPS:    cfg.RateLimitRPS,
		RateLimitBurst:  cfg.RateLimitBurst,
		CleanupInterval: cfg.CleanupInterval,
	})

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.WithError(err).Error("server exited")
		os.Exit(1)
	}
}
