package database

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MethodsDB is what the rest of the process needs from the pool once the
// repositories are built.
type MethodsDB interface {
	CloseDB() error
	HealthCheck() error
}

type DB struct {
	*sqlx.DB
}

// ConnectDB opens the process-wide pool. It is created once at start-up and
// closed by the caller on shutdown.
func ConnectDB(cfg *config.Config, logger zerolog.Logger) (*DB, error) {
	logger.Info().
		Str("host", cfg.DB.DbHOST).
		Str("dbname", cfg.DB.DbNAME).
		Bool("url", cfg.DB.URL != "").
		Msg("connecting to postgres")

	db, err := sqlx.Connect("postgres", cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if cfg.MigrationsEnabled {
		if err := RunMigrations(cfg.DB.DSN(), logger); err != nil {
			db.Close()
			return nil, err
		}
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	logger.Info().Msg("connected to postgres")
	return dbStruct, nil
}

// NewMigrator builds a migrate instance over the embedded SQL files.
// The caller owns the returned instance and must Close it.
func NewMigrator(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(MigrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, nil
}

func RunMigrations(dsn string, logger zerolog.Logger) error {
	m, err := NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug().Msg("migrations: no change")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	logger.Info().Uint("version", version).Msg("migrations applied")
	return nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}
