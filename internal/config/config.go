package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Database. Empty means the service runs unconfigured.
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	// Redis. Empty falls back to in-process caches.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	CookieSecure       bool   `mapstructure:"COOKIE_SECURE"`

	// Document storage
	StoragePath      string `mapstructure:"STORAGE_PATH"`
	StoragePublicURL string `mapstructure:"STORAGE_PUBLIC_URL"`
	MaxUploadMB      int    `mapstructure:"MAX_UPLOAD_MB"`

	// Presentation
	Timezone      string `mapstructure:"TIMEZONE"`
	DefaultLocale string `mapstructure:"DEFAULT_LOCALE"`

	// Rate limits, per window
	APIRateLimit    int           `mapstructure:"API_RATE_LIMIT"`
	APIRateWindow   time.Duration `mapstructure:"API_RATE_WINDOW"`
	LoginRateLimit  int           `mapstructure:"LOGIN_RATE_LIMIT"`
	LoginRateWindow time.Duration `mapstructure:"LOGIN_RATE_WINDOW"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("JWT_EXPIRATION_HOURS", 12)
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("STORAGE_PATH", "/tmp/embarques/storage")
	viper.SetDefault("STORAGE_PUBLIC_URL", "http://localhost:8000/archivos")
	viper.SetDefault("MAX_UPLOAD_MB", 10)
	viper.SetDefault("TIMEZONE", "America/Santiago")
	viper.SetDefault("DEFAULT_LOCALE", "es")
	viper.SetDefault("API_RATE_LIMIT", 1000)
	viper.SetDefault("API_RATE_WINDOW", "1m")
	viper.SetDefault("LOGIN_RATE_LIMIT", 20)
	viper.SetDefault("LOGIN_RATE_WINDOW", "1m")
	// DATABASE_URL, REDIS_URL and JWT_SECRET are bound without defaults so a
	// missing credential is reported instead of silently pointing at localhost.
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("JWT_SECRET")

	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DataConfigured reports whether the relational store credentials are present.
func (c *Config) DataConfigured() bool { return c.DatabaseURL != "" }

// AuthConfigured reports whether tokens can be signed.
func (c *Config) AuthConfigured() bool { return c.JWTSecret != "" }

// Location resolves TIMEZONE, falling back to UTC for unknown zones.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MaxUploadBytes is the document size ceiling.
func (c *Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(c.MaxUploadMB) << 20
}
