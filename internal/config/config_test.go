package config

import (
	"os"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `directories:
  temperature_output: out/temps
archive:
  base_url: "http://localhost:9999/v1/archive"
  window_years: 3
schedule:
  interval: 30m
metrics:
  listen_addr: ":9102"
api_key: "test-key"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Directories.TemperatureOutput != "out/temps" {
		t.Errorf("Expected output dir 'out/temps', got '%s'", cfg.Directories.TemperatureOutput)
	}
	if cfg.Archive.BaseURL != "http://localhost:9999/v1/archive" {
		t.Errorf("Unexpected archive base URL '%s'", cfg.Archive.BaseURL)
	}
	if cfg.Archive.WindowYears != 3 {
		t.Errorf("Expected window_years 3, got %d", cfg.Archive.WindowYears)
	}
	if cfg.ScheduleInterval != 30*time.Minute {
		t.Errorf("Expected schedule interval 30m, got %v", cfg.ScheduleInterval)
	}
	if cfg.Metrics.ListenAddr != ":9102" {
		t.Errorf("Expected metrics addr ':9102', got '%s'", cfg.Metrics.ListenAddr)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("Expected api_key 'test-key', got '%s'", cfg.APIKey)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, `{}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Directories.TemperatureOutput != defaultOutputDir {
		t.Errorf("Expected default output dir '%s', got '%s'", defaultOutputDir, cfg.Directories.TemperatureOutput)
	}
	if cfg.Archive.WindowYears != defaultWindowYears {
		t.Errorf("Expected default window_years %d, got %d", defaultWindowYears, cfg.Archive.WindowYears)
	}
	if cfg.ScheduleInterval != 0 {
		t.Errorf("Expected zero schedule interval, got %v", cfg.ScheduleInterval)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "invalid: [yaml: content")

	_, err := Load(path)
	if err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestLoad_InvalidInterval(t *testing.T) {
	path := writeTempConfig(t, `schedule:
  interval: sometimes
`)

	_, err := Load(path)
	if err == nil {
		t.Error("Expected error for invalid schedule.interval, got nil")
	}
}

func TestLoad_NegativeWindowYears(t *testing.T) {
	path := writeTempConfig(t, `archive:
  window_years: -1
`)

	_, err := Load(path)
	if err == nil {
		t.Error("Expected validation error for negative window_years, got nil")
	}
}

func TestGeocoderAPIKey_EnvOverride(t *testing.T) {
	path := writeTempConfig(t, `api_key: "from-config"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.GeocoderAPIKey(); got != "from-config" {
		t.Errorf("Expected key 'from-config', got '%s'", got)
	}

	t.Setenv("GOOGLE_MAPS_API_KEY", "from-env")
	if got := cfg.GeocoderAPIKey(); got != "from-env" {
		t.Errorf("Expected env key 'from-env', got '%s'", got)
	}
}
