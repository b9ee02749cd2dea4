// Package config load process configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"

	"jobposter-backend/internal/database"
)

// Config holds every setting the api process needs.
type Config struct {
	Port int `env:"PORT,default=8080"`

	DB database.DBConfig

	SecretKey string        `env:"SECRET_KEY,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=1h"`

	// Comma separated, same format as the frontend deployment uses
	AllowOrigin string `env:"ALLOW_ORIGIN,default=http://localhost:5173"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	RedisURL string `env:"REDIS_URL"`

	RateLimit uint `env:"RATE_LIMIT_REQUESTS_PER_SECOND,default=5"`

	LogLevel    string `env:"LOG_LEVEL,default=info"`
	AuthLogging bool   `env:"LOGGING,default=false"`
}

// Load decode Config from environment and validate it.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDB decode only the database section, for maintenance commands that do not serve HTTP.
func LoadDB() (*database.DBConfig, error) {
	var cfg database.DBConfig
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode database config: %w", err)
	}
	return &cfg, nil
}

// Validate check values that envdecode can not express with tags.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if len(c.SecretKey) < 16 {
		return errors.New("SECRET_KEY must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.RateLimit == 0 {
		c.RateLimit = 5
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// AllowOrigins split AllowOrigin into list of origin.
func (c *Config) AllowOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
