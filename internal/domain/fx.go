// Package domain contains business domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub"
)

// Module provides all domain modules for fx dependency injection
var Module = fx.Module("domain",
	forcesub.Module,
)
