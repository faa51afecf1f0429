// filepath: internal/cli/config_loader.go
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"docvault/internal/config"
	"docvault/internal/logging"
)

// loadConfig reads the TOML config file and applies environment overrides.
// A missing file is not an error; defaults apply. The result is not yet
// validated so commands can layer their own flag overrides on top.
func loadConfig(globalOptions *GlobalOptions) (*config.Config, error) {
	// Check environment variable for config path first
	cfgFile := globalOptions.CfgFilePath
	if envPath := os.Getenv("DOCVAULT_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = &config.Config{}
		} else {
			return nil, fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	applyEnvOverrides(cfg)

	if globalOptions.LogLevel != "" {
		cfg.Logging.Level = globalOptions.LogLevel
	}

	return cfg, nil
}

// finalizeConfig validates the assembled configuration and initializes
// logging from it.
func finalizeConfig(cfg *config.Config) error {
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logging.Init(cfg.Logging.Level)
	return nil
}

func applyEnvOverrides(c *config.Config) {
	getEnv := func(key string) string { return os.Getenv(key) }

	if v := getEnv("DOCVAULT_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getEnv("DOCVAULT_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getEnv("DOCVAULT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("DOCVAULT_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.AuditEnabled = b
		}
	}
	if v := getEnv("DOCVAULT_MAX_UPLOAD_SIZE"); v != "" {
		c.Server.MaxUploadSize = v
	}
	if v := getEnv("DOCVAULT_STAGING_ROOT"); v != "" {
		c.Storage.StagingRoot = v
	}
	if v := getEnv("DOCVAULT_FINAL_ROOT"); v != "" {
		c.Storage.FinalRoot = v
	}
	if v := getEnv("DOCVAULT_RETENTION"); v != "" {
		c.Storage.Retention = v
	}
	if v := getEnv("DOCVAULT_SWEEP_INTERVAL"); v != "" {
		c.Storage.SweepInterval = v
	}
	if v := getEnv("DOCVAULT_ALLOWED_EXTENSIONS"); v != "" {
		c.Storage.AllowedExtensions = strings.Split(v, ",")
	}
}
