package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Token store backends for the command-line client.
const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

// Emulator storage backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Client   ClientConfig
	Emulator EmulatorConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// ClientConfig drives cmd/skillnet.
type ClientConfig struct {
	APIURL            string        `env:"SKILLNET_API_URL,            default=http://localhost:8080"`
	HTTPTimeout       time.Duration `env:"SKILLNET_HTTP_TIMEOUT,       default=15s"`
	TokenStore        string        `env:"SKILLNET_TOKEN_STORE,        default=file"`
	TokenFile         string        `env:"SKILLNET_TOKEN_FILE"`
	TokenTTL          time.Duration `env:"SKILLNET_TOKEN_TTL,          default=24h"`
	SearchDebounce    time.Duration `env:"SKILLNET_SEARCH_DEBOUNCE,    default=300ms"`
	SearchMaxResults  int           `env:"SKILLNET_SEARCH_MAX_RESULTS, default=8"`
	TransitionWorkers int           `env:"SKILLNET_TRANSITION_WORKERS, default=4"`
}

// EmulatorConfig drives cmd/skillnet-emulator.
type EmulatorConfig struct {
	Port          string        `env:"PORT,            default=8080"`
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,       default=24h"`
	Store         string        `env:"EMULATOR_STORE,  default=memory"`
	Auth0StartURL string        `env:"AUTH0_START_URL"`
	AdminName     string        `env:"ADMIN_NAME,      default=Administrator"`
	AdminEmail    string        `env:"ADMIN_EMAIL"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	UseRedis      bool          `env:"EMULATOR_REDIS,  default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=skillnet"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the command-line client depends on.
func (c *ClientConfig) Validate() error {
	switch c.TokenStore {
	case TokenStoreFile, TokenStoreRedis, TokenStoreMemory:
	default:
		return fmt.Errorf("config: SKILLNET_TOKEN_STORE must be file, redis or memory, got %q", c.TokenStore)
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("config: SKILLNET_HTTP_TIMEOUT must be positive")
	}
	if c.SearchMaxResults <= 0 {
		return errors.New("config: SKILLNET_SEARCH_MAX_RESULTS must be positive")
	}
	return nil
}

// Validate checks the settings the emulator depends on.
func (c *EmulatorConfig) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	switch c.Store {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("config: EMULATOR_STORE must be memory or mongo, got %q", c.Store)
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("config: ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
