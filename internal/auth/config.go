package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	DefaultIssuer   = "media-catalog"
	DefaultTokenTTL = 12 * time.Hour
	minSecretLength = 32
)

type Config struct {
	AdminEmail        string
	AdminPasswordHash string
	Secret            []byte
	Issuer            string
	TokenTTL          time.Duration
}

func LoadEnv() (*Config, error) {
	cfg := &Config{
		AdminEmail:        strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		Secret:            []byte(os.Getenv("JWT_SECRET")),
		Issuer:            os.Getenv("JWT_ISSUER"),
		TokenTTL:          DefaultTokenTTL,
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}

	if ttl := os.Getenv("JWT_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid JWT_TTL %q", ttl)
		}
		cfg.TokenTTL = d
	}

	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		slog.Error("Admin credentials are not configured")
		return nil, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD_HASH must be set")
	}
	if len(cfg.Secret) < minSecretLength {
		slog.Error("JWT secret is too short", "minLength", minSecretLength)
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}

	return cfg, nil
}
