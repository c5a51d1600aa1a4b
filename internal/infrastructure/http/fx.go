package http

import (
	"context"
	"errors"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/telegram"
)

// Module provides HTTP server for fx dependency injection
var Module = fx.Module("http",
	fx.Provide(NewServerFx),
	fx.Invoke(func(*Server) {}),
)

// NewServerFx creates HTTP server with lifecycle hooks for fx dependency injection
func NewServerFx(
	lc fx.Lifecycle,
	serviceCfg *config.ServiceConfig,
	db *gorm.DB,
	bot *telegram.Bot,
	producer sarama.SyncProducer,
	logger zerolog.Logger,
) *Server {
	log := logger.With().Str("component", "http").Logger()

	srv := NewServer(serviceCfg.Name, serviceCfg.Port, log)
	srv.RegisterMetrics()
	srv.RegisterHealth(NewHealthHandler(healthChecks(db, bot, producer), log))

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

func healthChecks(db *gorm.DB, bot *telegram.Bot, producer sarama.SyncProducer) []HealthCheck {
	checks := []HealthCheck{
		{
			Name:     "telegram",
			Critical: true,
			Check: func(ctx context.Context) error {
				_, err := bot.SelfID(ctx)
				return err
			},
		},
	}

	if db != nil {
		checks = append(checks, HealthCheck{
			Name:     "database",
			Critical: true,
			Check: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		})
	}

	if producer != nil {
		checks = append(checks, HealthCheck{
			Name: "kafka",
			Check: func(context.Context) error {
				if producer.TxnStatus()&sarama.ProducerTxnFlagFatalError != 0 {
					return errors.New("producer in fatal state")
				}
				return nil
			},
		})
	}

	return checks
}
