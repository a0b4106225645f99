package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration. Values come from an optional YAML file,
// then environment variables (after loading an optional .env).
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
	MetricsPath string   `yaml:"metrics_path"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	LoginRatePerMinute int `yaml:"login_rate_per_minute"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":3000",
			CORSOrigins: []string{"*"},
			MetricsPath: "/metrics",
		},
		Auth: AuthConfig{LoginRatePerMinute: 10},
	}
}

// loadConfig reads .env (if present), the YAML file at CONFIG_PATH (default
// config.yaml, optional), and applies environment overrides.
func loadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig()

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no config file, defaults + env only
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if cfg.Database.URL == "" {
		return Config{}, errors.New("DB_URL is not set")
	}
	return cfg, nil
}

// applyEnv overrides cfg from environment variables read through getenv.
func (cfg *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("DB_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.CORSOrigins = origins
	}
	if v := getenv("LOGIN_RATE_PER_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("LOGIN_RATE_PER_MIN must be a positive integer, got %q", v)
		}
		cfg.Auth.LoginRatePerMinute = n
	}
	return nil
}
