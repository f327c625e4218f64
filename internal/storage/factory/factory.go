package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/es"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/pg"
)

// NewDataSource creates the configured storage.DataSource. The returned close
// func releases driver resources and is never nil.
func NewDataSource(ctx context.Context, cfg *StorageConfig) (storage.DataSource, func(), error) {
	noop := func() {}

	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, noop, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewStore(pool), pool.Close, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, noop, fmt.Errorf("missing Elasticsearch configuration")
		}
		s, err := es.NewStore(ctx, *cfg.Es, storage.CollectionEntries, storage.CollectionTrending)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case storage.InMem:
		return in_mem.NewStore(), noop, nil

	default:
		return nil, noop, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
