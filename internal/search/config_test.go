package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SUGGEST_DEBOUNCE", "")
		t.Setenv("BLUR_DELAY", "")

		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("SUGGEST_DEBOUNCE", "150ms")
		t.Setenv("BLUR_DELAY", "1s")

		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
		assert.Equal(t, time.Second, cfg.BlurDelay)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("SUGGEST_DEBOUNCE", "soon")
		_, err := LoadEnv()
		assert.Error(t, err)
	})

	t.Run("negative", func(t *testing.T) {
		t.Setenv("BLUR_DELAY", "-1s")
		_, err := LoadEnv()
		assert.Error(t, err)
	})
}
