package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chamas111/booking-airbnb/cmd/app"
	"github.com/Chamas111/booking-airbnb/internal/config"
	handlers "github.com/Chamas111/booking-airbnb/internal/handler"
	"github.com/Chamas111/booking-airbnb/internal/logging"
	"github.com/Chamas111/booking-airbnb/internal/middleware"
	"github.com/rs/zerolog"
)

func main() {
	checkPhotos := flag.Bool("check-photos", false, "list places that have no photos and exit")
	flag.Parse()

	// setting up config
	cfg := config.LoadConfig()
	logger := logging.New(cfg.Logging)

	if cfg.JWTSecretKey == "" {
		logger.Fatal().Msg("JWT_SECRET_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start")
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close connections")
		}
	}()

	if *checkPhotos {
		if err := reportPlacesWithoutPhotos(ctx, a, logger); err != nil {
			logger.Error().Err(err).Msg("photo check failed")
		}
		return
	}

	handler := handlers.NewHandlers(a.Services, a.DB, cfg, logger)
	router := handlers.NewRouter(handler, handlers.RouterOptions{
		UploadDir:   a.UploadDir,
		AuthLimiter: middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("database", cfg.DB.DbNAME).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func reportPlacesWithoutPhotos(ctx context.Context, a *app.App, logger zerolog.Logger) error {
	places, err := a.Repo.Place.ListWithoutPhotos(ctx)
	if err != nil {
		return err
	}

	for _, p := range places {
		logger.Warn().Str("place", p.PlaceID).Str("owner", p.OwnerID).Str("title", p.Title).Msg("place has no photos")
	}
	logger.Info().Int("count", len(places)).Msg("photo check finished")
	return nil
}
