package main

import (
	"github.com/sunhollow/farmstead/internal/config"
	"github.com/sunhollow/farmstead/internal/logger"
)

// Version is stamped at build time via -ldflags.
var Version = logger.DefaultVersion

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	addSource := cfg.Environment == logger.EnvironmentDev

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		Version,
		cfg.Environment,
		addSource,
	)

	logger.Init(loggerConfig)
}
