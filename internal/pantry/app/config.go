package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultConfigFile = "pantry.toml"
	defaultEnvFile    = ".env"
)

// Config is read from an optional TOML file and then the process environment,
// which an optional .env file may extend. The environment wins. Keys in the
// TOML file match the toml tags below.
type Config struct {
	DatabaseFile         string        `toml:"database_file"`         // Path to SQLite database file (default: ./pantry.db)
	PepperFile           string        `toml:"pepper_file"`           // Path to password pepper file (default: ./pepper)
	TokenTTL             time.Duration `toml:"token_ttl"`             // Lifetime of issued tokens, 0 for no expiry (default: 720h)
	CORSOrigins          []string      `toml:"cors_origins"`          // Browser origins allowed to call the API (default: none)
	Env                  string        `toml:"env"`                   // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        `toml:"log_level"`             // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        `toml:"log_format"`            // Log format (json, text) (default: json)
	Port                 int           `toml:"port"`                  // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration `toml:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration `toml:"housekeeping_interval"` // Expired token sweep interval (default: 1h)
	DBWaitTimeout        time.Duration `toml:"db_wait_timeout"`       // How long wait-for-db keeps trying (default: 60s)
	DBWaitInterval       time.Duration `toml:"db_wait_interval"`      // Delay between wait-for-db attempts (default: 1s)
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		DatabaseFile:         "pantry.db",
		PepperFile:           "pepper",
		TokenTTL:             30 * 24 * time.Hour,
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 8080,
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: 1 * time.Hour,
		DBWaitTimeout:        60 * time.Second,
		DBWaitInterval:       1 * time.Second,
	}
}

// LoadConfig layers the config file named by PANTRY_CONFIG_FILE (or
// ./pantry.toml when it exists), the .env file named by PANTRY_ENV_FILE (or
// ./.env) and the environment over DefaultConfig.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	// 1. .env first so it can point at a config file. Real environment
	// variables are never overwritten.
	envFile, explicit := os.LookupEnv("PANTRY_ENV_FILE")
	if !explicit {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return cfg, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	// 2. TOML file
	file, explicit := os.LookupEnv("PANTRY_CONFIG_FILE")
	if !explicit {
		file = defaultConfigFile
	}
	if _, err := toml.DecodeFile(file, &cfg); err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return cfg, fmt.Errorf("load config file %s: %w", file, err)
	}

	// 3. Environment
	cfg.DatabaseFile = getEnvOrDefault("PANTRY_DATABASE_FILE", cfg.DatabaseFile)
	cfg.PepperFile = getEnvOrDefault("PANTRY_PEPPER_FILE", cfg.PepperFile)
	cfg.TokenTTL = getEnvDurationOrDefault("PANTRY_TOKEN_TTL", cfg.TokenTTL)
	cfg.CORSOrigins = getEnvListOrDefault("PANTRY_CORS_ORIGINS", cfg.CORSOrigins)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)
	cfg.HousekeepingInterval = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", cfg.HousekeepingInterval)
	cfg.DBWaitTimeout = getEnvDurationOrDefault("DB_WAIT_TIMEOUT", cfg.DBWaitTimeout)
	cfg.DBWaitInterval = getEnvDurationOrDefault("DB_WAIT_INTERVAL", cfg.DBWaitInterval)

	return cfg, cfg.Validate()
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("database_file must be set"))
	}
	if c.PepperFile == "" {
		errs = append(errs, errors.New("pepper_file must be set"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.TokenTTL < 0 {
		errs = append(errs, errors.New("token_ttl must not be negative"))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("log_format %q must be json or text", c.LogFormat))
	}
	if c.HousekeepingInterval <= 0 {
		errs = append(errs, errors.New("housekeeping_interval must be positive"))
	}
	if c.DBWaitInterval <= 0 {
		errs = append(errs, errors.New("db_wait_interval must be positive"))
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated variable, dropping empty items.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
