package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	GitHub    GitHubConfig    `yaml:"github"`
	Transport TransportConfig `yaml:"transport"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// GitHubConfig controls the upstream REST client.
type GitHubConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Token     string        `yaml:"token"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	// MaxConcurrency caps simultaneous fetches while listing. Zero means no cap.
	MaxConcurrency int `yaml:"max_concurrency"`
}

// TransportConfig selects how the MCP surface is served.
type TransportConfig struct {
	Mode string `yaml:"mode"` // "http" or "stdio"
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3000,
		},
		DB: DBConfig{
			Path: "data/issues.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		GitHub: GitHubConfig{
			BaseURL:        "https://api.github.com",
			UserAgent:      "GitHub-Status-Tracker",
			Timeout:        5 * time.Second,
			MaxConcurrency: 8,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// path overrides TRACKER_CONFIG_PATH when non-empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("TRACKER_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Transport.Mode != "http" && c.Transport.Mode != "stdio" {
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.GitHub.BaseURL == "" {
		return fmt.Errorf("github base url is required")
	}
	if c.GitHub.Timeout < 0 {
		return fmt.Errorf("invalid github timeout %s", c.GitHub.Timeout)
	}
	if c.GitHub.MaxConcurrency < 0 {
		return fmt.Errorf("invalid github max concurrency %d", c.GitHub.MaxConcurrency)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("TRACKER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("TRACKER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("TRACKER_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("TRACKER_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if baseURL := os.Getenv("GITHUB_API_URL"); baseURL != "" {
		cfg.GitHub.BaseURL = baseURL
	}
	if timeoutStr := os.Getenv("GITHUB_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return fmt.Errorf("invalid GITHUB_TIMEOUT: %w", err)
		}
		cfg.GitHub.Timeout = timeout
	}
	if limitStr := os.Getenv("GITHUB_MAX_CONCURRENCY"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return fmt.Errorf("invalid GITHUB_MAX_CONCURRENCY: %w", err)
		}
		cfg.GitHub.MaxConcurrency = limit
	}
	return nil
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
