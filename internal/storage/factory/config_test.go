package factory

import (
	"testing"

	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *StorageConfig)
	}{
		{
			name:    "missing storage type",
			env:     map[string]string{"STORAGE_TYPE": ""},
			wantErr: true,
		},
		{
			name:    "unknown storage type",
			env:     map[string]string{"STORAGE_TYPE": "mongo"},
			wantErr: true,
		},
		{
			name: "in memory",
			env:  map[string]string{"STORAGE_TYPE": "in_mem"},
			check: func(t *testing.T, cfg *StorageConfig) {
				assert.Equal(t, storage.InMem, cfg.Type)
				assert.Nil(t, cfg.Pg)
				assert.Nil(t, cfg.Es)
			},
		},
		{
			name:    "pg without connection string",
			env:     map[string]string{"STORAGE_TYPE": "pg", "PG_CONNECTION_STRING": ""},
			wantErr: true,
		},
		{
			name: "pg",
			env:  map[string]string{"STORAGE_TYPE": "pg", "PG_CONNECTION_STRING": "postgres://localhost/catalog"},
			check: func(t *testing.T, cfg *StorageConfig) {
				require.NotNil(t, cfg.Pg)
				assert.Equal(t, "postgres://localhost/catalog", cfg.Pg.ConnStr)
			},
		},
		{
			name:    "es without addresses",
			env:     map[string]string{"STORAGE_TYPE": "es", "ES_ADDRESSES": " , "},
			wantErr: true,
		},
		{
			name: "es",
			env: map[string]string{
				"STORAGE_TYPE":    "es",
				"ES_ADDRESSES":    "http://a:9200, http://b:9200",
				"ES_INDEX_PREFIX": "catalog",
			},
			check: func(t *testing.T, cfg *StorageConfig) {
				require.NotNil(t, cfg.Es)
				assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.Es.Addresses)
				assert.Equal(t, "catalog", cfg.Es.IndexPrefix)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
