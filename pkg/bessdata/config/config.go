// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds all settings, populated from environment variables.
type Config struct {
	// WorkbookPath is the source procurement workbook.
	WorkbookPath string
	// CacheDir holds one JSON artifact per category.
	CacheDir string
	// RegistryPath optionally replaces the built-in sheet registry with a YAML file.
	RegistryPath string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadDotEnv seeds the environment from path when the file exists. Variables
// already set in the environment win. It reports whether a file was loaded.
func LoadDotEnv(path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		WorkbookPath:    sharedcfg.EnvOrDefault("BESSDATA_WORKBOOK", "California_Arizona_Texas_Procurement_Data.xlsx"),
		CacheDir:        sharedcfg.EnvOrDefault("BESSDATA_CACHE_DIR", "data"),
		RegistryPath:    os.Getenv("BESSDATA_REGISTRY"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.WorkbookPath == "" {
		return nil, errors.New("BESSDATA_WORKBOOK is required")
	}
	if cfg.CacheDir == "" {
		return nil, errors.New("BESSDATA_CACHE_DIR is required")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (must be json or text)", cfg.LogFormat)
	}

	return cfg, nil
}
