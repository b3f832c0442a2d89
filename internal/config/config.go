package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service settings. Values come from an optional YAML file
// and are then overridden by environment variables.
type Config struct {
	Port string `yaml:"port"`

	GeoapifyAPIKey  string        `yaml:"geoapify_api_key"`
	GeoapifyBaseURL string        `yaml:"geoapify_base_url"`
	GeoapifyTimeout time.Duration `yaml:"geoapify_timeout"`
	GeoapifyRPS     float64       `yaml:"geoapify_rps"`

	CacheBackend    string        `yaml:"cache_backend"`
	RedisURL        string        `yaml:"redis_url"`
	DatabaseURL     string        `yaml:"database_url"`
	DBPath          string        `yaml:"db_path"`
	AutocompleteTTL time.Duration `yaml:"autocomplete_ttl"`
	MatrixTTL       time.Duration `yaml:"matrix_ttl"`

	MaxOptimizeActivities int `yaml:"max_optimize_activities"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Defaults returns the settings used when neither file nor environment sets a key.
func Defaults() Config {
	return Config{
		Port:                  "8080",
		GeoapifyBaseURL:       "https://api.geoapify.com/v1",
		GeoapifyTimeout:       15 * time.Second,
		CacheBackend:          "memory",
		DBPath:                "data/cache.db",
		AutocompleteTTL:       5 * time.Minute,
		MatrixTTL:             10 * time.Minute,
		MaxOptimizeActivities: 25,
		LogLevel:              "info",
		LogFormat:             "text",
	}
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty or the file does not exist), and the environment.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Validate checks the backend selection and the numeric settings.
func (c Config) Validate() error {
	switch c.CacheBackend {
	case "memory", "sqlite":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis cache backend")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres cache backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}

	if c.GeoapifyTimeout <= 0 {
		return errors.New("GEOAPIFY_TIMEOUT must be positive")
	}
	if c.AutocompleteTTL <= 0 || c.MatrixTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}
	if c.GeoapifyRPS < 0 {
		return errors.New("GEOAPIFY_RPS must not be negative")
	}
	if c.MaxOptimizeActivities < 2 {
		return errors.New("MAX_OPTIMIZE_ACTIVITIES must be at least 2")
	}

	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = Get("PORT", cfg.Port)
	cfg.GeoapifyAPIKey = Get("GEOAPIFY_API_KEY", cfg.GeoapifyAPIKey)
	cfg.GeoapifyBaseURL = Get("GEOAPIFY_BASE_URL", cfg.GeoapifyBaseURL)
	cfg.CacheBackend = strings.ToLower(Get("CACHE_BACKEND", cfg.CacheBackend))
	cfg.RedisURL = Get("REDIS_URL", cfg.RedisURL)
	cfg.DatabaseURL = Get("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBPath = Get("DB_PATH", cfg.DBPath)
	cfg.LogLevel = Get("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = Get("LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.GeoapifyTimeout, err = durationEnv("GEOAPIFY_TIMEOUT", cfg.GeoapifyTimeout); err != nil {
		return err
	}
	if cfg.AutocompleteTTL, err = durationEnv("AUTOCOMPLETE_TTL", cfg.AutocompleteTTL); err != nil {
		return err
	}
	if cfg.MatrixTTL, err = durationEnv("MATRIX_TTL", cfg.MatrixTTL); err != nil {
		return err
	}

	if v := Get("GEOAPIFY_RPS", ""); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse GEOAPIFY_RPS %q: %w", v, err)
		}
		cfg.GeoapifyRPS = rps
	}

	if v := Get("MAX_OPTIMIZE_ACTIVITIES", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse MAX_OPTIMIZE_ACTIVITIES %q: %w", v, err)
		}
		cfg.MaxOptimizeActivities = n
	}

	return nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, v, err)
	}
	return d, nil
}
