package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBURL string `mapstructure:"DB_URL"`

	RedisAddress      string        `mapstructure:"REDIS_URL"`
	RedisPoolSize     int           `mapstructure:"REDIS_POOL_SIZE"`
	RedisMinIdleConns int           `mapstructure:"REDIS_MIN_IDLE_CONNS"`
	RedisDialTimeout  time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	RedisReadTimeout  time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`
	RedisMaxRetries   int           `mapstructure:"REDIS_MAX_RETRIES"`

	SymmetricKey string `mapstructure:"SYMMETRIC_KEY"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
	CORSOrigins    string  `mapstructure:"CORS_ORIGINS"`

	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`

	ClinicName string `mapstructure:"CLINIC_NAME"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "DB_URL",
	"REDIS_URL", "REDIS_POOL_SIZE", "REDIS_MIN_IDLE_CONNS", "REDIS_DIAL_TIMEOUT", "REDIS_READ_TIMEOUT", "REDIS_MAX_RETRIES",
	"SYMMETRIC_KEY", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ORIGINS",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "CLINIC_NAME",
}

// Load reads configuration from environment variables, falling back to a
// .env file in the working directory when present.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8930")
	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 30*time.Second)
	v.SetDefault("REDIS_READ_TIMEOUT", 10*time.Second)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("RATE_LIMIT_RPS", 15)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("CLINIC_NAME", "Hospital")

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// A missing .env file is fine; the environment is the primary source.
	_ = v.ReadInConfig()

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings required to serve requests.
func (c *AppConfig) Validate() error {
	if c.DBURL == "" {
		return errors.New("missing DB_URL environment variable")
	}
	if c.RedisAddress == "" {
		return errors.New("missing REDIS_URL environment variable")
	}
	if len(c.SymmetricKey) != 32 {
		return errors.New("SYMMETRIC_KEY must be 32 bytes long")
	}
	return nil
}

// IsDevelopment reports whether ENV=development.
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *AppConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *AppConfig) MailEnabled() bool {
	return c.SMTPHost != ""
}
