package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/Chamas111/booking-airbnb/internal/database"
	"github.com/Chamas111/booking-airbnb/internal/metrics"
	"github.com/Chamas111/booking-airbnb/internal/repository"
	"github.com/Chamas111/booking-airbnb/internal/service"
	"github.com/Chamas111/booking-airbnb/internal/session"
	"github.com/Chamas111/booking-airbnb/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const driverMinIO = "minio"

type App struct {
	DB       database.MethodsDB
	Repo     *repository.Repository
	Services *service.Service

	// UploadDir is set only when photos are kept on local disk.
	UploadDir string

	redis *redis.Client
}

// New connects every backing service and wires the dependency graph. Anything
// opened before a failure is closed again.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	codec, err := session.NewCodec(cfg.JWTSecretKey, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}

	// connection DB
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{DB: db}

	store, err := a.openStorage(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	// a nil interface turns revocation off; a typed nil would not
	var denyList session.DenyList
	if cfg.Redis.Addr != "" {
		a.redis = session.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := a.redis.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		denyList = session.NewRedisDenyList(a.redis)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("session revocation enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, logout will not revoke issued tokens")
	}

	metrics.Register()

	// enabling dependencies
	a.Repo = repository.NewRepository(db.DB, cfg.BcryptCost)
	a.Services = service.NewService(service.Deps{
		Repo:     a.Repo,
		Config:   cfg,
		Storage:  store,
		Codec:    codec,
		DenyList: denyList,
		Logger:   logger,
	})

	return a, nil
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.Storage, error) {
	if cfg.Upload.Driver == driverMinIO {
		client, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("endpoint", cfg.MinIO.Endpoint).Str("bucket", cfg.MinIO.BucketName).Msg("storing photos in minio")
		return client, nil
	}

	local, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}
	a.UploadDir = local.Dir()
	logger.Info().Str("dir", a.UploadDir).Msg("storing photos on local disk")
	return local, nil
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.CloseDB())
	}
	return errors.Join(errs...)
}
