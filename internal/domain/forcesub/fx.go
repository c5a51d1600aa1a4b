// Package forcesub contains the force-subscription gate domain module
package forcesub

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Conte777/forcesub-bot/config"
	telegramDelivery "github.com/Conte777/forcesub-bot/internal/domain/forcesub/delivery/telegram"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	kafkaRepo "github.com/Conte777/forcesub-bot/internal/domain/forcesub/repository/kafka"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/repository/memory"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/repository/postgres"
	telegramRepo "github.com/Conte777/forcesub-bot/internal/domain/forcesub/repository/telegram"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/usecase/business"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/workers"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/telegram"
)

// Module provides forcesub domain components for fx dependency injection
var Module = fx.Module("forcesub",
	// Repository
	fx.Provide(provideRequirementRepository),
	fx.Provide(telegramRepo.NewMembershipOracle),
	fx.Provide(telegramRepo.NewRoleChecker),
	fx.Provide(telegramRepo.NewChannelResolver),
	fx.Provide(kafkaRepo.NewPublisher),

	// UseCase
	fx.Provide(business.NewEvaluator),
	fx.Provide(business.NewGate),
	fx.Provide(business.NewVerifier),
	fx.Provide(business.NewAdmin),

	// Delivery - Telegram
	fx.Provide(
		telegramDelivery.NewSender,
		func(s *telegramDelivery.Sender) deps.Messenger { return s },
	),
	fx.Provide(telegramDelivery.NewHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Workers
	workers.Module,

	fx.Invoke(registerRoutes),
)

// provideRequirementRepository selects the registry backend by DATABASE_DRIVER
func provideRequirementRepository(cfg *config.DatabaseConfig, db *gorm.DB, logger zerolog.Logger) deps.RequirementRepository {
	if cfg.Driver == config.DriverMemory || db == nil {
		logger.Info().Str("driver", config.DriverMemory).Msg("Requirement registry initialized")
		return memory.NewRepository()
	}

	logger.Info().Str("driver", config.DriverPostgres).Msg("Requirement registry initialized")
	return postgres.NewRepository(db)
}

// registerRoutes installs Telegram handlers before polling starts and publishes the command menu
func registerRoutes(lc fx.Lifecycle, router *telegramDelivery.Router, bot *telegram.Bot, logger zerolog.Logger) {
	router.RegisterRoutes(bot)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := router.RegisterCommands(ctx, bot); err != nil {
				logger.Warn().Err(err).Msg("Failed to register bot command menu")
			}
			return nil
		},
	})
}
