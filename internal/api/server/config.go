package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/media-catalog/pkg/config/env"
	"github.com/DjordjeVuckovic/media-catalog/pkg/stringsutil"
)

const (
	defaultRateLimitRPS   = 20
	defaultRateLimitBurst = 40
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	RateLimit   RateLimitConfig
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func LoadConfig() (*Config, error) {
	err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/catalog_api/.env")
	if err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	useHttp2Str := os.Getenv("USE_HTTP2")
	useHttp2 := useHttp2Str == "true"

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	var origins []string
	corsOriginsEnv := os.Getenv("CORS_ORIGINS")
	if corsOriginsEnv != "" {
		origins = strings.Split(corsOriginsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		origins = stringsutil.RemoveEmptyStrings(origins)
	}

	if len(origins) == 0 {
		origins = []string{"*"}
	}

	rl, err := loadRateLimit()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        port,
		UseHttp2:    useHttp2,
		CorsOrigins: origins,
		RateLimit:   rl,
	}, nil
}

func loadRateLimit() (RateLimitConfig, error) {
	rl := RateLimitConfig{RPS: defaultRateLimitRPS, Burst: defaultRateLimitBurst}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps <= 0 {
			return RateLimitConfig{}, fmt.Errorf("invalid RATE_LIMIT_RPS %q", v)
		}
		rl.RPS = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			return RateLimitConfig{}, fmt.Errorf("invalid RATE_LIMIT_BURST %q", v)
		}
		rl.Burst = burst
	}
	return rl, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
