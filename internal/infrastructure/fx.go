// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Conte777/forcesub-bot/internal/infrastructure/database"
	httpfx "github.com/Conte777/forcesub-bot/internal/infrastructure/http"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/kafka"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/logger"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/telegram"
)

// Module aggregates all infrastructure modules
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	database.Module,
	telegram.Module,
	kafka.Module,
	httpfx.Module,
)
