package database

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Conte777/forcesub-bot/config"
)

// Module provides database components for fx dependency injection
var Module = fx.Module("database",
	fx.Provide(NewPostgresDBFx),
)

// NewPostgresDBFx opens the registry database and applies migrations.
// The memory driver needs no database and gets a nil *gorm.DB.
func NewPostgresDBFx(
	lc fx.Lifecycle,
	cfg *config.DatabaseConfig,
	logger zerolog.Logger,
) (*gorm.DB, error) {
	log := logger.With().Str("component", "database").Logger()

	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("Using in-memory requirement registry, data is lost on restart")
		return nil, nil
	}

	db, err := NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db, cfg); err != nil {
		// Startup continues; the schema may already be in place
		log.Warn().Err(err).Msg("Failed to run migrations")
	} else {
		log.Info().Msg("Database migrations completed successfully")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				log.Error().Err(err).Msg("Failed to get underlying sql.DB")
				return err
			}
			log.Info().Msg("Closing database connection")
			return sqlDB.Close()
		},
	})

	log.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("Database connected")

	return db, nil
}
