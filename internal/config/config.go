package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Import  ImportConfig  `json:"import"`
	Athlete AthleteConfig `json:"athlete"`
}

// ImportConfig holds FIT import settings
type ImportConfig struct {
	// ExportPath is the directory watched for FIT files, e.g. a RunGap
	// or Garmin export folder.
	ExportPath string `json:"export_path"`
}

// AthleteConfig holds the athlete's threshold settings. These seed the
// stored threshold profile on first run.
type AthleteConfig struct {
	FTPWatts           int     `json:"ftp_watts"`
	LTHR               int     `json:"lthr"`
	MaxHR              int     `json:"max_hr"`
	RestingHR          int     `json:"resting_hr"`
	ThresholdPaceMinKm float64 `json:"threshold_pace_minkm"`
	SwimThresholdPace  float64 `json:"swim_threshold_pace"`
	WeightKg           float64 `json:"weight_kg"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			FTPWatts:           200,
			LTHR:               165,
			MaxHR:              185,
			RestingHR:          50,
			ThresholdPaceMinKm: 5.0,
			SwimThresholdPace:  2.0,
			WeightKg:           70.0,
		},
	}
}

// Load reads the configuration from ~/.trainy/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.FTPWatts == 0 {
		cfg.Athlete.FTPWatts = defaults.Athlete.FTPWatts
	}
	if cfg.Athlete.LTHR == 0 {
		cfg.Athlete.LTHR = defaults.Athlete.LTHR
	}
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Athlete.RestingHR == 0 {
		cfg.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if cfg.Athlete.ThresholdPaceMinKm == 0 {
		cfg.Athlete.ThresholdPaceMinKm = defaults.Athlete.ThresholdPaceMinKm
	}
	if cfg.Athlete.SwimThresholdPace == 0 {
		cfg.Athlete.SwimThresholdPace = defaults.Athlete.SwimThresholdPace
	}
	if cfg.Athlete.WeightKg == 0 {
		cfg.Athlete.WeightKg = defaults.Athlete.WeightKg
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.trainy/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Import.ExportPath = "/path/to/your/fit/exports"

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Import.ExportPath == "" || c.Import.ExportPath == "/path/to/your/fit/exports" {
		return errors.New("import.export_path is required - point it at your FIT export folder")
	}

	if c.Athlete.FTPWatts < 0 {
		return fmt.Errorf("athlete.ftp_watts must not be negative, got %d", c.Athlete.FTPWatts)
	}
	if c.Athlete.LTHR < 0 {
		return fmt.Errorf("athlete.lthr must not be negative, got %d", c.Athlete.LTHR)
	}
	if c.Athlete.ThresholdPaceMinKm < 0 {
		return fmt.Errorf("athlete.threshold_pace_minkm must not be negative, got %v", c.Athlete.ThresholdPaceMinKm)
	}
	if c.Athlete.RestingHR > 0 && c.Athlete.MaxHR > 0 && c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%d) must be less than athlete.max_hr (%d)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainy", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainy"), nil
}
