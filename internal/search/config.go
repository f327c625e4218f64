package search

import (
	"fmt"
	"os"
	"time"
)

const (
	DefaultDebounce  = 300 * time.Millisecond
	DefaultBlurDelay = 200 * time.Millisecond
)

type Config struct {
	// Debounce is the quiet period after the last keystroke before
	// suggestions are fetched.
	Debounce time.Duration
	// BlurDelay postpones hiding the list so that a click on a row lands
	// before the list closes.
	BlurDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		Debounce:  DefaultDebounce,
		BlurDelay: DefaultBlurDelay,
	}
}

func LoadEnv() (Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.Debounce, err = durationEnv("SUGGEST_DEBOUNCE", cfg.Debounce); err != nil {
		return Config{}, err
	}
	if cfg.BlurDelay, err = durationEnv("BLUR_DELAY", cfg.BlurDelay); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
