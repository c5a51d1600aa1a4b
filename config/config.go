package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Storage drivers supported by the requirement registry
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration for the gate bot
type Config struct {
	Telegram TelegramConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Gate     GateConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string
	RequestTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MigrationsPath string
}

// KafkaConfig holds Kafka configuration. Empty Brokers disables event publishing.
type KafkaConfig struct {
	Brokers     []string
	EventsTopic string
}

// GateConfig holds force-subscription gate settings
type GateConfig struct {
	SuperuserIDs  []int64
	WarningTTL    time.Duration
	AdminCacheTTL time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config   *Config
	Telegram *TelegramConfig
	Database *DatabaseConfig
	Kafka    *KafkaConfig
	Gate     *GateConfig
	Logging  *LoggingConfig
	Service  *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:   cfg,
		Telegram: &cfg.Telegram,
		Database: &cfg.Database,
		Kafka:    &cfg.Kafka,
		Gate:     &cfg.Gate,
		Logging:  &cfg.Logging,
		Service:  &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	requestTimeout, err := getDuration("TELEGRAM_REQUEST_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	warningTTL, err := getDuration("FORCESUB_WARNING_TTL", 60*time.Second)
	if err != nil {
		return nil, err
	}

	adminCacheTTL, err := getDuration("ADMIN_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	superusers, err := parseIDs(getEnv("BOT_OWNER_ID", ""))
	if err != nil {
		return nil, fmt.Errorf("BOT_OWNER_ID: %w", err)
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
			RequestTimeout: requestTimeout,
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
			Host:           getEnv("DATABASE_HOST", "localhost"),
			Port:           getEnv("DATABASE_PORT", "5432"),
			User:           getEnv("DATABASE_USER", "forcesub_user"),
			Password:       getEnv("DATABASE_PASSWORD", "forcesub_pass"),
			Name:           getEnv("DATABASE_NAME", "forcesub_db"),
			SSLMode:        getEnv("DATABASE_SSLMODE", "disable"),
			MigrationsPath: getEnv("DATABASE_MIGRATIONS_PATH", "file://migrations"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(getEnv("KAFKA_BROKERS", "")),
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "forcesub.events"),
		},
		Gate: GateConfig{
			SuperuserIDs:  superusers,
			WarningTTL:    warningTTL,
			AdminCacheTTL: adminCacheTTL,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "forcesub-bot"),
			Port: getEnv("SERVICE_PORT", getEnv("PORT", "8080")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Telegram.RequestTimeout <= 0 {
		return fmt.Errorf("TELEGRAM_REQUEST_TIMEOUT must be positive")
	}

	if c.Gate.WarningTTL <= 0 {
		return fmt.Errorf("FORCESUB_WARNING_TTL must be positive")
	}

	if c.Gate.AdminCacheTTL < 0 {
		return fmt.Errorf("ADMIN_CACHE_TTL must not be negative")
	}

	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DATABASE_HOST is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DATABASE_USER is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DATABASE_NAME is required")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	if len(c.Kafka.Brokers) > 0 && c.Kafka.EventsTopic == "" {
		return fmt.Errorf("KAFKA_EVENTS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// IsSuperuser reports whether userID is one of the configured bot owners
func (c *GateConfig) IsSuperuser(userID int64) bool {
	for _, id := range c.SuperuserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return d, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseIDs(value string) ([]int64, error) {
	var ids []int64
	for _, item := range splitList(value) {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q", item)
		}
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
