package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full service configuration, read from the environment so main
// stays lean.
type Config struct {
	Addr        string `env:"SYNDIK_ADDR" env-default:":8080"`
	MetricsAddr string `env:"SYNDIK_METRICS_ADDR" env-default:":9091"`
	LogLevel    string `env:"SYNDIK_LOG_LEVEL" env-default:"info"`

	// JWTSigningKey must be overridden outside development.
	JWTSigningKey string        `env:"SYNDIK_JWT_SIGNING_KEY" env-default:"dev-secret-key-change-in-production"`
	TokenTTL      time.Duration `env:"SYNDIK_TOKEN_TTL" env-default:"12h"`

	// BootstrapSecret seeds the first top-administrator account when the
	// accounts collection is empty.
	BootstrapSecret string `env:"SYNDIK_BOOTSTRAP_SECRET" env-default:"change-me"`

	Storage  Storage
	Notifier Notifier
}

// Storage selects and parameterizes the persistence backend.
type Storage struct {
	// Backend is one of: memory, file, redis, postgres.
	Backend string `env:"SYNDIK_STORAGE_BACKEND" env-default:"file"`
	DataDir string `env:"SYNDIK_DATA_DIR" env-default:"./data"`

	// QuotaBytes caps the memory backend; zero disables the quota.
	QuotaBytes int `env:"SYNDIK_STORAGE_QUOTA_BYTES" env-default:"0"`
	// EvictCount is how many of the oldest records a quota recovery drops.
	EvictCount int `env:"SYNDIK_STORAGE_EVICT_COUNT" env-default:"25"`

	RedisURL    string `env:"SYNDIK_REDIS_URL"`
	PostgresDSN string `env:"SYNDIK_POSTGRES_DSN"`
}

// Notifier selects the delivery sink for administrator notifications.
type Notifier struct {
	// Kind is one of: log, kafka.
	Kind         string   `env:"SYNDIK_NOTIFIER" env-default:"log"`
	KafkaBrokers []string `env:"SYNDIK_KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaTopic   string   `env:"SYNDIK_KAFKA_TOPIC" env-default:"syndik.audit-notifications"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
