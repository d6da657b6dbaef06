package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Redis   RedisConfig
	Catalog CatalogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	CORSAllowOrigins []string
}

// Storage backends
const (
	StorageBackendLocal = "local"
	StorageBackendAPI   = "api"
)

// StorageConfig selects and configures the recipe repository backend.
// "local" serves recipes from the embedded sqlite store, "api" serves a
// cached snapshot backed by the remote catalog.
type StorageConfig struct {
	Backend    string
	SQLitePath string
}

// RedisConfig holds Redis connection settings. An empty host disables
// Redis and the catalog snapshot falls back to the in-memory store.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CatalogConfig holds remote catalog settings for the "api" backend
type CatalogConfig struct {
	BaseURL          string
	Categories       []string
	PerCategoryLimit int
	FetchTimeout     time.Duration
	// CategoryNames maps remote category labels to display names.
	// Unlisted labels pass through unchanged.
	CategoryNames map[string]string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with COOKBOOK_ prefix (e.g., COOKBOOK_REDIS_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("COOKBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		Storage: StorageConfig{
			Backend:    v.GetString("storage.backend"),
			SQLitePath: v.GetString("storage.sqlite_path"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Catalog: CatalogConfig{
			BaseURL:          v.GetString("catalog.base_url"),
			Categories:       v.GetStringSlice("catalog.categories"),
			PerCategoryLimit: v.GetInt("catalog.per_category_limit"),
			FetchTimeout:     v.GetDuration("catalog.fetch_timeout"),
			CategoryNames:    v.GetStringMapString("catalog.category_names"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "cookbook-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = StorageBackendLocal
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "cookbook.db"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "https://www.themealdb.com/api/json/v1/1"
	}
	if len(cfg.Catalog.Categories) == 0 {
		cfg.Catalog.Categories = []string{"Beef", "Chicken", "Dessert", "Pasta", "Seafood", "Vegetarian"}
	}
	if cfg.Catalog.PerCategoryLimit == 0 {
		cfg.Catalog.PerCategoryLimit = 3
	}
	if cfg.Catalog.FetchTimeout == 0 {
		cfg.Catalog.FetchTimeout = 30 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageBackendLocal, StorageBackendAPI:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q",
			StorageBackendLocal, StorageBackendAPI, c.Storage.Backend)
	}

	if c.Catalog.PerCategoryLimit < 0 {
		return fmt.Errorf("catalog.per_category_limit cannot be negative")
	}

	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// Addr returns the Redis connection address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled reports whether a Redis host is configured
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}
