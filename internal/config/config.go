package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Engine constants (the 1-hour
// cache staleness, 252 trading days, the 2% risk-free rate and the default
// metric values) are deliberately not configurable.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		Kind    string `yaml:"kind"` // "yahoo" or "rest"
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Analytics struct {
		Benchmark string   `yaml:"benchmark"`
		Watchlist []string `yaml:"watchlist"`
	} `yaml:"analytics"`
	Schedule struct {
		PrewarmCron string `yaml:"prewarm_cron"`
		StatsCron   string `yaml:"stats_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("RADAR_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATA_SOURCE_KIND"); v != "" {
		cfg.DataSource.Kind = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("BENCHMARK_SYMBOL"); v != "" {
		cfg.Analytics.Benchmark = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Analytics.Watchlist = strings.Split(v, ",")
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PREWARM_CRON"); v != "" {
		cfg.Schedule.PrewarmCron = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8090"
	}
	if cfg.DataSource.Kind == "" {
		cfg.DataSource.Kind = "yahoo"
	}
	if cfg.Analytics.Benchmark == "" {
		cfg.Analytics.Benchmark = "SPY"
	}
	if cfg.Schedule.PrewarmCron == "" {
		// Refresh shortly after the hourly cache expiry, weekdays.
		cfg.Schedule.PrewarmCron = "0 5 * * * 1-5"
	}
	if cfg.Schedule.StatsCron == "" {
		cfg.Schedule.StatsCron = "0 0 18 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.DataSource.Kind {
	case "yahoo":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest data source")
		}
	default:
		return fmt.Errorf("data_source.kind must be \"yahoo\" or \"rest\", got %q", c.DataSource.Kind)
	}
	if c.Analytics.Benchmark == "" {
		return fmt.Errorf("analytics.benchmark is required")
	}
	return nil
}
