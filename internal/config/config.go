package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Layout    LayoutConfig    `yaml:"layout"`
	Auth      AuthConfig      `yaml:"auth"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// BackendConfig selects the grid backend. Driver is "sqlite" or "memory".
type BackendConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// LayoutConfig selects the tenant namespace layout. Mode is "dedicated"
// (one table per tenant, named Prefix + tenant) or "shared" (one table
// for all tenants).
type LayoutConfig struct {
	Mode   string `yaml:"mode"`
	Prefix string `yaml:"prefix"`
	Table  string `yaml:"table"`
}

// AuthConfig holds the static tenant allow-list.
type AuthConfig struct {
	Enabled bool     `yaml:"enabled"`
	Tenants []string `yaml:"tenants"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Backend: BackendConfig{
			Driver: "sqlite",
			Path:   "gridstore.db",
		},
		Layout: LayoutConfig{
			Mode:   "dedicated",
			Prefix: "projects_",
			Table:  "projects",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("GRIDSTORE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("GRIDSTORE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("GRIDSTORE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GRIDSTORE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if driver := os.Getenv("GRIDSTORE_BACKEND_DRIVER"); driver != "" {
		cfg.Backend.Driver = driver
	}
	if path := os.Getenv("GRIDSTORE_BACKEND_PATH"); path != "" {
		cfg.Backend.Path = path
	}
	if mode := os.Getenv("GRIDSTORE_LAYOUT_MODE"); mode != "" {
		cfg.Layout.Mode = mode
	}
	if tenants := os.Getenv("GRIDSTORE_TENANTS"); tenants != "" {
		cfg.Auth.Tenants = strings.Split(tenants, ",")
	}
	if mode := os.Getenv("GRIDSTORE_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("GRIDSTORE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
