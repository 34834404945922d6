// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	// APIBaseURL is the campaign backend every fetch and stream goes to.
	APIBaseURL          string        `env:"DASHBOARD_API_URL" validate:"required,url"`
	Port                string        `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	Environment         string        `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development staging production"`
	RequestTimeout      time.Duration `env:"DASHBOARD_REQUEST_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	Locale              string        `env:"DASHBOARD_LOCALE" envDefault:"en-IN"`
	TimeZone            string        `env:"DASHBOARD_TIMEZONE" envDefault:"Local"`
	CORSOrigins         []string      `env:"DASHBOARD_CORS_ORIGINS" envDefault:"*" envSeparator:","`
	NotificationHistory int           `env:"DASHBOARD_NOTIFICATION_HISTORY" envDefault:"50" validate:"gt=0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
