package search

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"golang.org/x/sync/singleflight"
)

// trendingQueryTimeout bounds a shared trending query, which outlives the
// context of the caller that started it.
const trendingQueryTimeout = 10 * time.Second

// TrendingProvider lists visible trending items, newest first. Concurrent
// callers share one store query; a caller that gives up does not cancel it
// for the others.
type TrendingProvider struct {
	ds    storage.DataSource
	group singleflight.Group
}

func NewTrendingProvider(ds storage.DataSource) *TrendingProvider {
	return &TrendingProvider{ds: ds}
}

func (p *TrendingProvider) Trending(ctx context.Context) ([]domain.Suggestion, error) {
	ch := p.group.DoChan(storage.CollectionTrending, func() (any, error) {
		queryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), trendingQueryTimeout)
		defer cancel()

		docs, err := p.ds.QueryOrdered(queryCtx, storage.CollectionTrending, domain.FieldTimestamp, storage.Desc, 0)
		if err != nil {
			return nil, err
		}

		out := make([]domain.Suggestion, 0, len(docs))
		for _, d := range docs {
			if s := domain.SuggestionFromDocument(d); !s.IsHidden {
				out = append(out, s)
			}
		}
		return out, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	// Shared callers get their own copy.
	shared := res.Val.([]domain.Suggestion)
	out := make([]domain.Suggestion, len(shared))
	copy(out, shared)
	return out, nil
}
