package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"strongbox.dev/internal/domain/entity"
)

// Custody backend modes
const (
	CustodyModeMemory = "memory"
	CustodyModeRemote = "remote"
)

// Config holds the application configuration
type Config struct {
	Server   Server   `mapstructure:"server"`
	Log      Log      `mapstructure:"log"`
	Auth     Auth     `mapstructure:"auth"`
	Custody  Custody  `mapstructure:"custody"`
	Database Database `mapstructure:"database"`
	Assets   []string `mapstructure:"assets"`
}

// Server configuration
type Server struct {
	Port string `mapstructure:"port"`
}

// Log configuration
type Log struct {
	Level string `mapstructure:"level"`
}

// Auth configuration. Account addresses are case-sensitive, so signing keys
// are a list rather than a YAML map (viper lowercases map keys).
type Auth struct {
	Admin              string        `mapstructure:"admin"`
	Keys               []AccountKey  `mapstructure:"keys"`
	TimestampTolerance time.Duration `mapstructure:"timestampTolerance"`
}

// AccountKey pairs an account address with its request signing secret
type AccountKey struct {
	Account string `mapstructure:"account"`
	Secret  string `mapstructure:"secret"`
}

// Custody configuration for the external transfer backend
type Custody struct {
	Mode           string        `mapstructure:"mode"`
	Endpoint       string        `mapstructure:"endpoint"`
	APIKey         string        `mapstructure:"apiKey"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
	Seed           []SeedHolding `mapstructure:"seed"`
}

// SeedHolding pre-funds an external holding of the in-memory custody backend
type SeedHolding struct {
	Account string `mapstructure:"account"`
	Asset   string `mapstructure:"asset"`
	Amount  string `mapstructure:"amount"`
}

// Database configuration for the event journal
type Database struct {
	URI           string `mapstructure:"uri"`
	MigrationsDir string `mapstructure:"migrationsDir"`
}

// LoadConfig loads configuration from YAML files and the environment.
// Uses CONFIG_ENV environment variable to determine which config file to load
func LoadConfig(configDir string) (*Config, error) {
	// Populate the environment from .env when one is present
	_ = godotenv.Load()

	configEnv := os.Getenv("CONFIG_ENV")
	if configEnv == "" {
		configEnv = "local"
	}

	// Load base app-config.yaml as template/defaults (if it exists)
	baseConfigPath := fmt.Sprintf("%s/app-config.yaml", configDir)
	baseConfigExists := false
	if _, err := os.Stat(baseConfigPath); err == nil {
		viper.SetConfigFile(baseConfigPath)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read base config file: %w", err)
		}
		baseConfigExists = true
	}

	// Load environment-specific config (e.g., local.yaml when CONFIG_ENV=local)
	envConfigPath := fmt.Sprintf("%s/%s.yaml", configDir, configEnv)
	if _, err := os.Stat(envConfigPath); err == nil {
		if baseConfigExists {
			// Merge environment config on top of base config
			viper.SetConfigFile(envConfigPath)
			if err := viper.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("failed to merge env config file: %w", err)
			}
		} else {
			viper.SetConfigFile(envConfigPath)
			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read env config file: %w", err)
			}
		}
	}
	// With neither file present the service runs on defaults and env vars alone

	// Also read from environment variables (with prefix)
	viper.SetEnvPrefix("STRONGBOX")
	viper.AutomaticEnv()

	// Bind environment variables
	viper.BindEnv("server.port", "STRONGBOX_SERVER_PORT", "PORT")
	viper.BindEnv("log.level", "STRONGBOX_LOG_LEVEL", "LOG_LEVEL")
	viper.BindEnv("auth.admin", "STRONGBOX_AUTH_ADMIN", "ADMIN_ADDRESS")
	viper.BindEnv("auth.timestampTolerance", "STRONGBOX_AUTH_TIMESTAMP_TOLERANCE", "TIMESTAMP_TOLERANCE")
	viper.BindEnv("custody.mode", "STRONGBOX_CUSTODY_MODE", "CUSTODY_MODE")
	viper.BindEnv("custody.endpoint", "STRONGBOX_CUSTODY_ENDPOINT", "CUSTODY_ENDPOINT")
	viper.BindEnv("custody.apiKey", "STRONGBOX_CUSTODY_API_KEY", "CUSTODY_API_KEY")
	viper.BindEnv("database.uri", "STRONGBOX_DATABASE_URI", "DATABASE_URI")
	viper.BindEnv("database.migrationsDir", "STRONGBOX_DATABASE_MIGRATIONS_DIR", "MIGRATIONS_DIR")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Auth.TimestampTolerance == 0 {
		cfg.Auth.TimestampTolerance = 5 * time.Minute
	}
	if cfg.Custody.Mode == "" {
		cfg.Custody.Mode = CustodyModeMemory
	}
	if cfg.Custody.RequestTimeout == 0 {
		cfg.Custody.RequestTimeout = 10 * time.Second
	}
	if cfg.Database.MigrationsDir == "" {
		cfg.Database.MigrationsDir = "internal/infrastructure/journal/migrations"
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Auth.Admin == "" {
		return fmt.Errorf("auth.admin is required")
	}
	if _, err := entity.ParseAddress(cfg.Auth.Admin); err != nil {
		return fmt.Errorf("invalid auth.admin: %w", err)
	}
	for _, key := range cfg.Auth.Keys {
		if _, err := entity.ParseAddress(key.Account); err != nil {
			return fmt.Errorf("invalid auth.keys account %q: %w", key.Account, err)
		}
		if key.Secret == "" {
			return fmt.Errorf("auth.keys account %q has an empty secret", key.Account)
		}
	}
	switch cfg.Custody.Mode {
	case CustodyModeMemory:
	case CustodyModeRemote:
		if cfg.Custody.Endpoint == "" {
			return fmt.Errorf("custody.endpoint is required when custody.mode is %q", CustodyModeRemote)
		}
	default:
		return fmt.Errorf("unknown custody.mode %q", cfg.Custody.Mode)
	}
	for _, asset := range cfg.Assets {
		if _, err := entity.ParseAsset(asset); err != nil {
			return fmt.Errorf("invalid asset %q: %w", asset, err)
		}
	}
	return nil
}
