package main

import (
	"fmt"

	"github.com/phrazzld/taskboard-api/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables, an optional .env file and an optional config.yaml.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
