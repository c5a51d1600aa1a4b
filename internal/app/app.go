// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain"
	"github.com/Conte777/forcesub-bot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, database, telegram, kafka, http)
		infrastructure.Module,

		// Domain (force-subscription gate)
		domain.Module,
	)
}
