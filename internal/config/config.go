package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultOutputDir   = "data/temperature_heatmaps"
	defaultWindowYears = 5
)

// Config holds the pipeline settings read from config.yaml.
type Config struct {
	Directories struct {
		TemperatureOutput string `yaml:"temperature_output"`
	} `yaml:"directories"`
	Archive struct {
		BaseURL     string `yaml:"base_url"`
		WindowYears int    `yaml:"window_years"`
	} `yaml:"archive"`
	Schedule struct {
		Interval string `yaml:"interval"`
	} `yaml:"schedule"`
	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
	APIKey string `yaml:"api_key"`

	// ScheduleInterval is parsed from Schedule.Interval during Load.
	// Zero means a single pipeline run.
	ScheduleInterval time.Duration `yaml:"-"`
}

// Load reads and validates the configuration file. Any failure here is meant
// to abort the run before the first network call.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Directories.TemperatureOutput == "" {
		cfg.Directories.TemperatureOutput = defaultOutputDir
	}
	if cfg.Archive.WindowYears == 0 {
		cfg.Archive.WindowYears = defaultWindowYears
	}

	if cfg.Schedule.Interval != "" {
		interval, err := time.ParseDuration(cfg.Schedule.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule.interval: %w", err)
		}
		cfg.ScheduleInterval = interval
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Archive.WindowYears < 0 {
		return fmt.Errorf("archive.window_years cannot be negative")
	}
	if c.ScheduleInterval < 0 {
		return fmt.Errorf("schedule.interval cannot be negative")
	}
	return nil
}

// GeocoderAPIKey returns the Google Geocoding API key, preferring the
// environment over the config file.
func (c *Config) GeocoderAPIKey() string {
	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		return key
	}
	return c.APIKey
}
