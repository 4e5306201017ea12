// Package server exposes the calculators, team resolver, matchup builder and bet
// tracker as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/alerts"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/api"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/config"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/metrics"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/positions"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/prediction"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/teams"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second

	maxBodyBytes = 1 << 20
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// Options wires the server's collaborators. Only Roster is required.
type Options struct {
	Addr            string
	Roster          teams.Roster
	Normalizer      *prediction.Normalizer
	Bets            *positions.DB         // nil disables the /api/bets routes
	Predictor       *api.PredictorClient // nil disables /api/matchup/live
	Notifier        *alerts.Notifier
	Metrics         *metrics.Metrics
	Logger          *logrus.Logger
	RateLimitRPS    float64 // 0 = unlimited
	RateLimitBurst  int
	CleanupInterval time.Duration
}

// Server is the HTTP API
type Server struct {
	addr       string
	roster     teams.Roster
	normalizer *prediction.Normalizer
	bets       *positions.DB
	predictor  *api.PredictorClient
	notifier   *alerts.Notifier
	metrics    *metrics.Metrics
	logger     *logrus.Logger
	limiter    *rate.Limiter
	cleanup    time.Duration
	handler    http.Handler
}

// New builds a Server, filling unset collaborators with defaults
func New(opts Options) *Server {
	s := &Server{
		addr:       opts.Addr,
		roster:     opts.Roster,
		normalizer: opts.Normalizer,
		bets:       opts.Bets,
		predictor:  opts.Predictor,
		notifier:   opts.Notifier,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		cleanup:    opts.CleanupInterval,
	}

	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	if s.normalizer == nil {
		s.normalizer = prediction.NewNormalizer(s.roster)
	}
	if s.notifier == nil {
		s.notifier = alerts.NewNotifier(config.DefaultAlertCooldown, s.logger)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.cleanup <= 0 {
		s.cleanup = config.DefaultCleanupInterval
	}
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}

	s.syncTrackedBets()
	s.handler = s.routes()
	return s
}

// Handler returns the fully wrapped router
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	cleanupTicker := time.NewTicker(s.cleanup)
	defer cleanupTicker.Stop()

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil

		case <-cleanupTicker.C:
			if n := s.notifier.CleanupOldAlerts(); n > 0 {
				s.logger.WithField("removed", n).Debug("cleaned up alert history")
			}

		case <-ctx.Done():
			s.logger.Info("shutdown signal received, stopping")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			s.logger.Info("server stopped gracefully")
			return nil
		}
	}
}
