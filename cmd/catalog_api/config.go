package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/media-catalog/internal/auth"
	"github.com/DjordjeVuckovic/media-catalog/internal/search"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/factory"
	"github.com/DjordjeVuckovic/media-catalog/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type CatalogConfig struct {
	StorageConfig *factory.StorageConfig
	AuthConfig    *auth.Config
	SearchConfig  search.Config
}

func (as *AppConfig) Load() (*CatalogConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/catalog_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	authCfg, err := auth.LoadEnv()
	if err != nil {
		return nil, err
	}

	searchCfg, err := search.LoadEnv()
	if err != nil {
		slog.Error("Failed to load search configuration from environment", "error", err)
		return nil, err
	}

	return &CatalogConfig{
		StorageConfig: storageCfg,
		AuthConfig:    authCfg,
		SearchConfig:  searchCfg,
	}, nil
}
