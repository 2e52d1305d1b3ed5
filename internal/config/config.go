// Package config loads the go-nav service configuration: a YAML file
// with environment-variable overrides, validated before use. A local
// .env file is honored for development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	// Port the gateway listens on.
	Port string `yaml:"port" validate:"required"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	Routing RoutingConfig `yaml:"routing"`
	Camera  CameraConfig  `yaml:"camera"`
}

// RoutingConfig configures the routing-service client.
type RoutingConfig struct {
	// BaseURL of the OSRM-compatible routing service. Empty selects
	// the public demo server.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// Timeout for the one route fetch per destination.
	Timeout time.Duration `yaml:"timeout"`
}

// CameraConfig selects the chase-camera tuning.
type CameraConfig struct {
	// Preset is one of default, city, highway.
	Preset string `yaml:"preset" validate:"oneof=default city highway"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Port:     "8080",
		LogLevel: "info",
		Routing: RoutingConfig{
			Timeout: 15 * time.Second,
		},
		Camera: CameraConfig{
			Preset: "default",
		},
	}
}

// Load reads the configuration. path may be empty to use defaults plus
// environment overrides. Environment always wins over the file.
func Load(path string) (Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NAV_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("NAV_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NAV_ROUTING_URL"); v != "" {
		cfg.Routing.BaseURL = v
	}
	if v := os.Getenv("NAV_CAMERA_PRESET"); v != "" {
		cfg.Camera.Preset = v
	}
}
