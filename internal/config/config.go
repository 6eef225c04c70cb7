// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir       string // Base directory for databases (always absolute)
	EphemerisPath string // Optional directory with ephemeris data files
	SiderealMode  string // Ayanamsha name, e.g. "lahiri"
	ActivityFile  string // Optional YAML file overriding activity tables
	LogLevel      string
	Port          int
	DevMode       bool

	// Search knobs
	DenseWindowHours  int // Half-width of the dense alternative search
	DenseStepMinutes  int // Sampling step for the dense search
	SparseHorizonDays int // How many days the sparse search looks ahead
	SearchWorkers     int // Worker pool size for alternative sampling

	// Score cache
	CacheTTLMinutes int // TTL for cached score results
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("AUSPICE_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:           absDataDir,
		EphemerisPath:     getEnv("AUSPICE_EPHEMERIS_PATH", ""),
		SiderealMode:      getEnv("AUSPICE_SIDEREAL_MODE", "lahiri"),
		ActivityFile:      getEnv("AUSPICE_ACTIVITY_FILE", ""),
		Port:              getEnvAsInt("AUSPICE_PORT", 8080),
		DevMode:           getEnvAsBool("DEV_MODE", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DenseWindowHours:  getEnvAsInt("AUSPICE_DENSE_WINDOW_HOURS", 2),
		DenseStepMinutes:  getEnvAsInt("AUSPICE_DENSE_STEP_MINUTES", 15),
		SparseHorizonDays: getEnvAsInt("AUSPICE_SPARSE_HORIZON_DAYS", 7),
		SearchWorkers:     getEnvAsInt("AUSPICE_SEARCH_WORKERS", 4),
		CacheTTLMinutes:   getEnvAsInt("AUSPICE_CACHE_TTL_MINUTES", 60),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.DenseStepMinutes <= 0 {
		return fmt.Errorf("dense step must be positive, got %d", c.DenseStepMinutes)
	}
	if c.SearchWorkers <= 0 {
		return fmt.Errorf("search workers must be positive, got %d", c.SearchWorkers)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
