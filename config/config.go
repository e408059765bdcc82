package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Black-And-White-Club/three-under/internal/observability"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreNATS     = "nats"
)

// Version is stamped at build time with -ldflags "-X .../config.Version=...".
var Version = "dev"

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Store         StoreConfig         `yaml:"store"`
	NATS          NATSConfig          `yaml:"nats"`
	Redis         RedisConfig         `yaml:"redis"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	SQLite        SQLiteConfig        `yaml:"sqlite"`
	JWT           JWTConfig           `yaml:"jwt"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimit       float64       `yaml:"rate_limit"`
	RateBurst       int           `yaml:"rate_burst"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// StoreConfig selects the save store driver.
type StoreConfig struct {
	Driver string `yaml:"driver"`
}

// NATSConfig holds NATS configuration. The URL is used by the nats store driver
// and, when EventBus is set, by the event bus.
type NATSConfig struct {
	URL      string `yaml:"url"`
	KVBucket string `yaml:"kv_bucket"`
	EventBus bool   `yaml:"event_bus"`
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// SQLiteConfig holds the local database file location.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// JWTConfig holds JWT configuration. An empty secret disables bearer auth.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// CatalogConfig names an optional course catalog file replacing the embedded one.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Store:  StoreConfig{Driver: StoreMemory},
		NATS:   NATSConfig{KVBucket: "scorecard_saves"},
		Redis:  RedisConfig{Prefix: "three-under:save:"},
		SQLite: SQLiteConfig{Path: "three-under.db"},
		JWT: JWTConfig{
			Issuer:     "three-under",
			DefaultTTL: 24 * time.Hour,
		},
		Observability: ObservabilityConfig{
			Environment: "production",
			LogLevel:    "info",
		},
	}
}

// LoadConfig loads a .env file if present, then the YAML file at filename on
// top of the defaults, then environment overrides. A missing YAML file is not
// an error; the configuration then comes from defaults and environment.
func LoadConfig(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) error {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s value: %w", key, err)
			}
			*dst = d
		}
		return nil
	}

	setString("HTTP_ADDRESS", &cfg.HTTP.Address)
	if err := setDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := setDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := setDuration("HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout); err != nil {
		return err
	}
	if v := os.Getenv("HTTP_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT value: %w", err)
		}
		cfg.HTTP.RateLimit = f
	}
	if v := os.Getenv("HTTP_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_BURST value: %w", err)
		}
		cfg.HTTP.RateBurst = n
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}

	setString("STORE_DRIVER", &cfg.Store.Driver)
	setString("NATS_URL", &cfg.NATS.URL)
	setString("NATS_KV_BUCKET", &cfg.NATS.KVBucket)
	if v := os.Getenv("NATS_EVENT_BUS"); v != "" {
		cfg.NATS.EventBus = v == "true"
	}
	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)
	setString("REDIS_PREFIX", &cfg.Redis.Prefix)
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %w", err)
		}
		cfg.Redis.DB = n
	}
	setString("DATABASE_URL", &cfg.Postgres.DSN)
	setString("SQLITE_PATH", &cfg.SQLite.Path)
	setString("JWT_SECRET", &cfg.JWT.Secret)
	setString("JWT_ISSUER", &cfg.JWT.Issuer)
	if err := setDuration("JWT_DEFAULT_TTL", &cfg.JWT.DefaultTTL); err != nil {
		return err
	}
	setString("COURSE_CATALOG_PATH", &cfg.Catalog.Path)
	setString("ENV", &cfg.Observability.Environment)
	setString("LOG_LEVEL", &cfg.Observability.LogLevel)
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that the selected drivers have what they need.
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreMemory:
	case StoreSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite store requires sqlite.path")
		}
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres store requires postgres.dsn or DATABASE_URL")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis store requires redis.addr or REDIS_ADDR")
		}
	case StoreNATS:
		if c.NATS.URL == "" {
			return errors.New("nats store requires nats.url or NATS_URL")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.NATS.EventBus && c.NATS.URL == "" {
		return errors.New("nats event bus requires nats.url or NATS_URL")
	}
	return nil
}

// ToObsConfig converts the application config to the observability config.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName: "three-under",
		Environment: appCfg.Observability.Environment,
		Version:     Version,
		LogLevel:    appCfg.Observability.LogLevel,
	}
}
