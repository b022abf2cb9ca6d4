package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"oneof=dev staging prod test"`

	// Inventory geometry
	QuickAccessSize int `validate:"min=1"`
	GeneralSize     int `validate:"min=0"`
	StackCapacity   int `validate:"min=1"`

	// Economy
	StartingGold int `validate:"min=0"`

	// Author-time content
	ItemsPath    string `validate:"required"`
	CatalogsPath string `validate:"required"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		Environment:  getEnv("ENVIRONMENT", "dev"),
		ItemsPath:    getEnv("ITEMS_PATH", DefaultItemsPath),
		CatalogsPath: getEnv("CATALOGS_PATH", DefaultCatalogsPath),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.QuickAccessSize, err = getEnvInt("QUICK_ACCESS_SIZE", DefaultQuickAccessSize); err != nil {
		return nil, err
	}
	if cfg.GeneralSize, err = getEnvInt("GENERAL_SIZE", DefaultGeneralSize); err != nil {
		return nil, err
	}
	if cfg.StackCapacity, err = getEnvInt("STACK_CAPACITY", DefaultStackCapacity); err != nil {
		return nil, err
	}
	if cfg.StartingGold, err = getEnvInt("STARTING_GOLD", DefaultStartingGold); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}
