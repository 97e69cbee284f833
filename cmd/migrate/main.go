package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/Chamas111/booking-airbnb/internal/database"
	"github.com/Chamas111/booking-airbnb/internal/logging"
	"github.com/golang-migrate/migrate/v4"
)

func main() {
	op := flag.String("op", "", "operation: up, down, version, force")
	steps := flag.Int("steps", 0, "number of steps for up/down (0 = all)")
	version := flag.Int("version", -1, "version to force")
	flag.Parse()

	if *op == "" {
		fmt.Println("Usage: go run ./cmd/migrate -op=[up|down|version|force] -steps=[n] -version=[v]")
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	logger := logging.New(cfg.Logging)

	m, err := database.NewMigrator(cfg.DB.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("could not create migrate instance")
	}
	defer m.Close()

	switch *op {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			logger.Fatal().Err(verr).Msg("could not read version")
		}
		logger.Info().Uint("version", v).Bool("dirty", dirty).Msg("current schema version")
		return
	case "force":
		if *version < 0 {
			logger.Fatal().Msg("please specify -version to force")
		}
		err = m.Force(*version)
	default:
		logger.Fatal().Str("op", *op).Msg("unknown operation")
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info().Msg("no changes detected")
		return
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	logger.Info().Str("op", *op).Msg("migration success")
}
