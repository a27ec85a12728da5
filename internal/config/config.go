package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Predictor PredictorConfig
	Database  DatabaseConfig
	Session   SessionConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// PredictorConfig points the front end at the prediction backend
type PredictorConfig struct {
	BaseURL       string
	Timeout       time.Duration // 0 disables the per-request timeout
	HealthTimeout time.Duration
	HealthCache   time.Duration // how long sessions share one health result
}

// DatabaseConfig selects the recent-city store. An empty driver disables it.
type DatabaseConfig struct {
	Driver string // sqlite3, postgres
	DSN    string
}

// SessionConfig controls browser sessions
type SessionConfig struct {
	CookieName  string
	IdleTimeout time.Duration
}

// Load reads configuration from file, .env and environment variables.
// When configFile is empty the default search paths are used.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.weather-predictor")
	}

	setDefaults(v)

	// WEATHER_PREDICTOR_PREDICTOR_BASEURL overrides predictor.baseURL
	v.SetEnvPrefix("WEATHER_PREDICTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginMode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("predictor.baseURL", "http://127.0.0.1:8000")
	v.SetDefault("predictor.timeout", "0s")
	v.SetDefault("predictor.healthTimeout", "5s")
	v.SetDefault("predictor.healthCache", "30s")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "file:weather-predictor.db?cache=shared")
	v.SetDefault("session.cookieName", "wp_session")
	v.SetDefault("session.idleTimeout", "30m")
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Predictor.BaseURL) == "" {
		return errors.New("predictor.baseURL must not be empty")
	}
	if c.Predictor.Timeout < 0 {
		return fmt.Errorf("predictor.timeout must not be negative, got %s", c.Predictor.Timeout)
	}
	switch c.Database.Driver {
	case "", "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	return c.NewLoggerTo(os.Stdout)
}

// NewLoggerTo is NewLogger writing to w
func (c *Config) NewLoggerTo(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
