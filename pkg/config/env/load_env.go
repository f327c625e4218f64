package env

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files. ENV_PATH, when set,
// replaces defaultPaths. Missing files are an error only in local mode.
func LoadDotEnv(env string, defaultPaths ...string) error {
	paths := defaultPaths
	if p := os.Getenv("ENV_PATH"); p != "" {
		paths = []string{p}
	} else {
		slog.Info("ENV_PATH is not set, using default paths", "defaultPaths", defaultPaths)
	}

	var errs []error
	loaded := 0
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			errs = append(errs, err)
			continue
		}
		loaded++
	}

	if loaded == 0 && len(errs) > 0 {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "error", errors.Join(errs...))
			return errors.Join(errs...)
		}
		slog.Debug("Skipping .env ...")
	}

	return nil
}
