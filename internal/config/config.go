package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config carries all runtime settings, populated from the environment.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	Database   DatabaseConfig
	Bootstrap  BootstrapConfig
	Simulation SimulationConfig
	Tracing    TracingConfig
}

// DatabaseConfig selects the gorm driver and connection string.
type DatabaseConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"DB_DSN" default:"file:storefront.db?_fk=1"`
}

// BootstrapConfig controls startup seeding.
type BootstrapConfig struct {
	EnsureDemoCatalog bool `envconfig:"BOOTSTRAP_DEMO_CATALOG" default:"true"`
	EnsureDemoBuyers  bool `envconfig:"BOOTSTRAP_DEMO_BUYERS" default:"true"`
	MediaRoot         string `envconfig:"MEDIA_ROOT" default:"media"`
}

// SimulationConfig bounds the simulated sales window.
type SimulationConfig struct {
	WindowDays int `envconfig:"SIMULATION_WINDOW_DAYS" default:"730"`
}

// TracingConfig configures the OTLP trace exporter.
type TracingConfig struct {
	Enabled          bool    `envconfig:"TRACING_ENABLED" default:"false"`
	ServiceName      string  `envconfig:"TRACING_SERVICE_NAME" default:"storefront"`
	ExporterEndpoint string  `envconfig:"TRACING_EXPORTER_ENDPOINT" default:"localhost:4318"`
	ExporterProtocol string  `envconfig:"TRACING_EXPORTER_PROTOCOL" default:"http"`
	SamplingRatio    float64 `envconfig:"TRACING_SAMPLING_RATIO" default:"1.0"`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("storefront", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
