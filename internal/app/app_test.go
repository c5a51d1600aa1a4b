package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestCreateApp(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:test-token")
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("BOT_OWNER_ID", "999")

	require.NoError(t, fx.ValidateApp(CreateApp()))
}

func TestCreateApp_WithKafkaAndPostgres(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:test-token")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("KAFKA_BROKERS", "localhost:9093")

	require.NoError(t, fx.ValidateApp(CreateApp()))
}
