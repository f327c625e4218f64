package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/media"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/DjordjeVuckovic/media-catalog/internal/validate"
)

const DefaultBatchSize = 500

type Stats struct {
	Entries  int
	Trending int
}

type ImporterOption func(*Importer)

func WithBatchSize(n int) ImporterOption {
	return func(im *Importer) {
		if n > 0 {
			im.batchSize = n
		}
	}
}

func WithClock(now func() time.Time) ImporterOption {
	return func(im *Importer) {
		im.now = now
	}
}

// WithBaseDir resolves imageFile paths against dir.
func WithBaseDir(dir string) ImporterOption {
	return func(im *Importer) {
		im.baseDir = dir
	}
}

// Importer writes a seed file into a DataSource. Stores implementing
// storage.BulkAdder are loaded in batches, others one document at a time.
type Importer struct {
	ds        storage.DataSource
	validator *validate.Validator
	batchSize int
	baseDir   string
	now       func() time.Time
}

func NewImporter(ds storage.DataSource, v *validate.Validator, opts ...ImporterOption) *Importer {
	im := &Importer{
		ds:        ds,
		validator: v,
		batchSize: DefaultBatchSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

func (im *Importer) Run(ctx context.Context, f *File) (Stats, error) {
	if err := f.Validate(); err != nil {
		return Stats{}, err
	}

	entries, err := im.entryDocs(f.Entries)
	if err != nil {
		return Stats{}, err
	}
	trending, err := im.trendingDocs(ctx, f.Trending)
	if err != nil {
		return Stats{}, err
	}

	if err := im.write(ctx, storage.CollectionEntries, entries); err != nil {
		return Stats{}, err
	}
	if err := im.write(ctx, storage.CollectionTrending, trending); err != nil {
		return Stats{Entries: len(entries)}, err
	}

	stats := Stats{Entries: len(entries), Trending: len(trending)}
	slog.Info("Seed import completed", "entries", stats.Entries, "trending", stats.Trending)
	return stats, nil
}

func (im *Importer) entryDocs(records []EntryRecord) ([]storage.Fields, error) {
	now := im.now().UTC()
	docs := make([]storage.Fields, 0, len(records))

	for i, r := range records {
		if err := im.validator.Struct(r, fmt.Sprintf("entry %d is invalid", i)); err != nil {
			return nil, err
		}
		image, err := im.image(r.Image, r.ImageFile)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, r.Title, err)
		}

		e := domain.Entry{
			Title:       strings.TrimSpace(r.Title),
			Description: strings.TrimSpace(r.Description),
			Category:    strings.TrimSpace(r.Category),
			ImageBase64: image,
			Link:        strings.TrimSpace(r.Link),
		}
		// Earlier records are newer so the file order is the listing order.
		createdAt := now.Add(-time.Duration(i) * time.Second)
		if r.CreatedAt != nil {
			createdAt = r.CreatedAt.UTC()
		}

		fields := e.Fields()
		fields[domain.FieldCreatedAt] = createdAt
		docs = append(docs, fields)
	}
	return docs, nil
}

func (im *Importer) trendingDocs(ctx context.Context, records []TrendingRecord) ([]storage.Fields, error) {
	if len(records) == 0 {
		return nil, nil
	}

	existing, err := im.ds.QueryOrdered(ctx, storage.CollectionTrending, domain.FieldTimestamp, storage.Desc, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count trending items: %w", err)
	}
	if len(existing)+len(records) > domain.MaxTrendingItems {
		return nil, fmt.Errorf("store has %d trending items, adding %d exceeds the limit of %d",
			len(existing), len(records), domain.MaxTrendingItems)
	}

	now := im.now().UTC()
	docs := make([]storage.Fields, 0, len(records))
	for i, r := range records {
		image, err := im.image(r.Image, r.ImageFile)
		if err != nil {
			return nil, fmt.Errorf("trending %d (%s): %w", i, r.Title, err)
		}
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = domain.DefaultTrendingTitle
		}
		docs = append(docs, storage.Fields{
			domain.FieldTitle:       title,
			domain.FieldDescription: strings.TrimSpace(r.Description),
			domain.FieldImage:       image,
			domain.FieldHidden:      r.Hidden,
			domain.FieldTimestamp:   now.Add(-time.Duration(i) * time.Second),
		})
	}
	return docs, nil
}

func (im *Importer) image(dataURL, path string) (string, error) {
	if path == "" {
		if dataURL != "" && !media.IsDataURL(dataURL) {
			return "", fmt.Errorf("image must be a data URL")
		}
		return dataURL, nil
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(im.baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return media.EncodeDataURL(f)
}

func (im *Importer) write(ctx context.Context, collection string, docs []storage.Fields) error {
	if len(docs) == 0 {
		return nil
	}

	bulk, ok := im.ds.(storage.BulkAdder)
	if !ok {
		for i, d := range docs {
			if _, err := im.ds.Add(ctx, collection, d); err != nil {
				return fmt.Errorf("failed to add %s document %d: %w", collection, i, err)
			}
		}
		return nil
	}

	for start := 0; start < len(docs); start += im.batchSize {
		end := min(start+im.batchSize, len(docs))
		if err := bulk.AddBulk(ctx, collection, docs[start:end]); err != nil {
			return fmt.Errorf("failed to bulk add %s documents: %w", collection, err)
		}
		slog.Debug("Seed batch written", "collection", collection, "from", start, "to", end)
	}
	return nil
}
