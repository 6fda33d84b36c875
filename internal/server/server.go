// Package server wires the services together and runs the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/MyelinBots/connectmap-go/internal/api"
	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/attendance"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/healthcheck"
	"github.com/MyelinBots/connectmap-go/internal/metrics"
	"github.com/MyelinBots/connectmap-go/internal/ratelimit"
	"github.com/MyelinBots/connectmap-go/internal/services/aiprofile"
	"github.com/MyelinBots/connectmap-go/internal/services/attendancestats"
	"github.com/MyelinBots/connectmap-go/internal/services/friends"
	"github.com/MyelinBots/connectmap-go/internal/services/moderation"
	"github.com/MyelinBots/connectmap-go/internal/services/onboarding"
	"github.com/MyelinBots/connectmap-go/internal/services/places"
	"github.com/MyelinBots/connectmap-go/internal/services/users"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// Build constructs every service on top of database.
func Build(ctx context.Context, cfg config.Config, database *db.DB, limiter ratelimit.Limiter, log *zap.Logger) (api.Services, error) {
	gen, err := aiprofile.NewGemini(ctx, cfg.GeminiConfig, log)
	if err != nil {
		return api.Services{}, err
	}
	if gen == nil {
		log.Info("gemini disabled, using deterministic taste profiles only")
	}

	return api.Services{
		Users:      users.New(user_profile.NewUserProfileRepository(database), log),
		Onboarding: onboarding.New(database, gen, log),
		Friends:    friends.New(database, log),
		Places:     places.New(database, cfg.PlacesConfig, log),
		Stats:      attendancestats.New(attendance.NewAttendanceRepository(database), log),
		Moderation: moderation.New(database, log),
		Limiter:    limiter,
		Metrics:    metrics.New(),
		Ready:      map[string]healthcheck.Pinger{"database": database},
	}, nil
}

// Run serves the API until ctx is cancelled, then drains in-flight
// requests and stops the background workers.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	database, err := db.NewDatabase(cfg.DBConfig, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warn("closing database", zap.Error(err))
		}
	}()

	limiter, closeLimiter, err := ratelimit.New(ctx, cfg.RedisConfig, cfg.HTTPConfig, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLimiter(); err != nil {
			log.Warn("closing redis", zap.Error(err))
		}
	}()

	svc, err := Build(ctx, cfg, database, limiter, log)
	if err != nil {
		return err
	}

	svc.Stats.Start(cfg.StatsConfig.RefreshInterval)
	defer svc.Stats.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTPConfig.Host, strconv.Itoa(cfg.HTTPConfig.Port)),
		Handler:      api.NewRouter(cfg, svc, log),
		ReadTimeout:  cfg.HTTPConfig.ReadTimeout,
		WriteTimeout: cfg.HTTPConfig.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("version", cfg.AppConfig.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
