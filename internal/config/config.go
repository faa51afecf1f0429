// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`

	// Runtime computed values, not loaded from file.
	MaxUploadSizeBytes int64         `toml:"-"`
	RetentionAge       time.Duration `toml:"-"`
	SweepInterval      time.Duration `toml:"-"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	MaxUploadSize string `toml:"max_upload_size"` // e.g. "100MB", "512KB"
}

// StorageConfig holds the staging and final store configuration.
type StorageConfig struct {
	StagingRoot string `toml:"staging_root"`
	FinalRoot   string `toml:"final_root"`

	// Retention is how old a staged file may get before the reaper deletes
	// it. It must stay well above the longest realistic upload duration.
	Retention     string `toml:"retention"`      // e.g. "24h"
	SweepInterval string `toml:"sweep_interval"` // e.g. "1h"

	// AllowedExtensions is the validator allow-list (without dots).
	// Empty means every extension is accepted.
	AllowedExtensions []string `toml:"allowed_extensions"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes
// and durations.
func (c *Config) ParseAndValidate() error {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}

	// Default MaxUploadSize to 100MB if not specified
	if c.Server.MaxUploadSize == "" {
		c.Server.MaxUploadSize = "100MB"
	}

	sizeBytes, err := parseSize(c.Server.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	c.MaxUploadSizeBytes = sizeBytes

	if c.Storage.StagingRoot == "" {
		c.Storage.StagingRoot = "data/staging"
	}
	if c.Storage.FinalRoot == "" {
		c.Storage.FinalRoot = "data/documents"
	}

	if c.Storage.Retention == "" {
		c.Storage.Retention = "24h"
	}
	retention, err := time.ParseDuration(c.Storage.Retention)
	if err != nil {
		return fmt.Errorf("invalid retention: %w", err)
	}
	if retention < time.Minute {
		return fmt.Errorf("retention %s is below the 1m minimum; live uploads would risk premature reaping", c.Storage.Retention)
	}
	c.RetentionAge = retention

	if c.Storage.SweepInterval == "" {
		c.Storage.SweepInterval = "1h"
	}
	sweep, err := time.ParseDuration(c.Storage.SweepInterval)
	if err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	if sweep <= 0 {
		return fmt.Errorf("sweep_interval must be positive")
	}
	c.SweepInterval = sweep

	return nil
}

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
func parseSize(sizeStr string) (int64, error) {
	re := regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	unit := ""
	if len(matches) > 2 {
		unit = strings.ToUpper(matches[2])
	}

	switch unit {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}
