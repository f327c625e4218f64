package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
)

// SuggestionFetcher returns suggestions for partial query text.
type SuggestionFetcher interface {
	Fetch(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// TrendingSource returns the default suggestions shown for an empty query.
type TrendingSource interface {
	Trending(ctx context.Context) ([]domain.Suggestion, error)
}

// Fetcher matches entry titles by prefix on the stored lowercase title.
type Fetcher struct {
	ds storage.DataSource
}

func NewFetcher(ds storage.DataSource) *Fetcher {
	return &Fetcher{ds: ds}
}

func (f *Fetcher) Fetch(ctx context.Context, query string) ([]domain.Suggestion, error) {
	prefix := strings.ToLower(query)
	if prefix == "" {
		return nil, nil
	}

	docs, err := f.ds.QueryPrefix(ctx, storage.CollectionEntries, domain.FieldTitleLowercase, prefix)
	if err != nil {
		return nil, err
	}

	suggestions := make([]domain.Suggestion, 0, len(docs))
	for _, d := range docs {
		suggestions = append(suggestions, domain.SuggestionFromDocument(d))
	}

	slog.Debug("suggestions fetched", "prefix", prefix, "count", len(suggestions))
	return suggestions, nil
}
