package workers

import (
	"context"

	"go.uber.org/fx"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
)

// Module provides workers for fx dependency injection
var Module = fx.Module("forcesub-workers",
	fx.Provide(
		NewExpirer,
		func(e *Expirer) deps.Expirer { return e },
	),
	fx.Invoke(registerExpirerLifecycle),
)

// registerExpirerLifecycle cancels pending deletions on shutdown
func registerExpirerLifecycle(lc fx.Lifecycle, expirer *Expirer) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return expirer.Stop()
		},
	})
}
