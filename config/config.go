package config

import (
	"os"
	"path/filepath"
)

// Config holds the process-level settings, read from the environment
// (a .env file is loaded by main before this runs).
type Config struct {
	Port          string
	ClientURL     string
	DataDir       string
	IndicatorFile string
	BoundaryFile  string
	// Optional YAML file overriding the built-in indicator configuration.
	IndicatorConfigPath string
	GinMode             string
}

func Load() *Config {
	return &Config{
		Port:                getEnvWithDefault("PORT", "8080"),
		ClientURL:           os.Getenv("CLIENT_URL"),
		DataDir:             getEnvWithDefault("DATA_DIR", "data"),
		IndicatorFile:       getEnvWithDefault("INDICATOR_FILE", "dept_vulnerabilite_2022.csv"),
		BoundaryFile:        getEnvWithDefault("BOUNDARY_FILE", "departements.geojson"),
		IndicatorConfigPath: os.Getenv("INDICATOR_CONFIG"),
		GinMode:             getEnvWithDefault("GIN_MODE", "debug"),
	}
}

// IndicatorPath is the location of the department indicator CSV.
func (c *Config) IndicatorPath() string {
	return filepath.Join(c.DataDir, c.IndicatorFile)
}

// BoundaryPath is the location of the department boundary GeoJSON.
func (c *Config) BoundaryPath() string {
	return filepath.Join(c.DataDir, c.BoundaryFile)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
