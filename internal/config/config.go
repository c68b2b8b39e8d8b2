package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	TMDB    TMDBConfig    `yaml:"tmdb"`
	Screens ScreensConfig `yaml:"screens"`
}

type ServerConfig struct {
	Env  string `yaml:"env"`
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type TMDBConfig struct {
	APIKey       string        `yaml:"api_key"`
	BaseURL      string        `yaml:"base_url"`
	ImageBaseURL string        `yaml:"image_base_url"`
	Language     string        `yaml:"language"`
	Timeout      time.Duration `yaml:"timeout"`
}

type ScreensConfig struct {
	// TTL is how long an idle listing screen keeps its state
	TTL time.Duration `yaml:"ttl"`
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order of precedence (env wins).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := defaults()

	path := getEnv("CONFIG_FILE", "config.yaml")
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.TMDB.APIKey == "" {
		return nil, fmt.Errorf("TMDB_KEY is required")
	}
	if cfg.TMDB.Timeout <= 0 {
		return nil, fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if cfg.Screens.TTL <= 0 {
		return nil, fmt.Errorf("SCREEN_TTL must be positive")
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Env:  "local",
			Port: "4000",
			Host: "http://localhost:4000",
		},
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "en-US",
			Timeout:      10 * time.Second,
		},
		Screens: ScreensConfig{
			TTL: 30 * time.Minute,
		},
	}
}

// loadFile overlays a YAML file onto cfg. A missing file is not an error.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	cfg.Server.Env = getEnv("ENV", cfg.Server.Env)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.Host = getEnv("HOST", cfg.Server.Host)

	cfg.TMDB.APIKey = getEnv("TMDB_KEY", cfg.TMDB.APIKey)
	cfg.TMDB.BaseURL = getEnv("TMDB_URL", cfg.TMDB.BaseURL)
	cfg.TMDB.ImageBaseURL = getEnv("TMDB_IMAGE_URL", cfg.TMDB.ImageBaseURL)
	cfg.TMDB.Language = getEnv("TMDB_LANGUAGE", cfg.TMDB.Language)

	var err error
	if cfg.TMDB.Timeout, err = getDuration("TMDB_TIMEOUT", cfg.TMDB.Timeout); err != nil {
		return err
	}
	if cfg.Screens.TTL, err = getDuration("SCREEN_TTL", cfg.Screens.TTL); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// IsDevelopment returns true if running in development/local mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "local" || c.Server.Env == "development"
}

// Addr returns the listen address in :port format
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Server.Port)
}
