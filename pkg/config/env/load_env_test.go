package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_TEST_VALUE=from-file\n"), 0o600))

	t.Run("loads first existing file", func(t *testing.T) {
		t.Setenv("ENV_PATH", "")
		t.Setenv("CATALOG_TEST_VALUE", "")
		require.NoError(t, os.Unsetenv("CATALOG_TEST_VALUE"))

		err := LoadDotEnv("local", filepath.Join(dir, "missing.env"), path)
		require.NoError(t, err)
		assert.Equal(t, "from-file", os.Getenv("CATALOG_TEST_VALUE"))
	})

	t.Run("ENV_PATH overrides defaults", func(t *testing.T) {
		t.Setenv("ENV_PATH", filepath.Join(dir, "missing.env"))

		assert.Error(t, LoadDotEnv("local", path))
	})

	t.Run("missing files tolerated outside local", func(t *testing.T) {
		t.Setenv("ENV_PATH", "")

		assert.NoError(t, LoadDotEnv("production", filepath.Join(dir, "missing.env")))
	})
}
