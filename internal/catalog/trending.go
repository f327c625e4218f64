package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
)

var msgTrendingFull = fmt.Sprintf("Maximum %d trending items allowed", domain.MaxTrendingItems)

type TrendingInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageBase64 string `json:"imageBase64,omitempty"`
}

// TrendingService curates the trending list. Hidden items stay stored but are
// left out of public suggestions.
type TrendingService struct {
	ds  storage.DataSource
	now func() time.Time
	// addLock serializes the count check with the insert.
	addLock sync.Mutex
}

func NewTrendingService(ds storage.DataSource, opts ...Option) *TrendingService {
	o := buildOptions(opts)
	return &TrendingService{ds: ds, now: o.now}
}

// List returns every trending item, hidden included, newest first.
func (s *TrendingService) List(ctx context.Context) ([]domain.TrendingItem, error) {
	docs, err := s.ds.QueryOrdered(ctx, storage.CollectionTrending, domain.FieldTimestamp, storage.Desc, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list trending items: %w", err)
	}

	items := make([]domain.TrendingItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, domain.TrendingItemFromDocument(d))
	}
	return items, nil
}

func (s *TrendingService) Add(ctx context.Context, in TrendingInput) (domain.TrendingItem, error) {
	s.addLock.Lock()
	defer s.addLock.Unlock()

	existing, err := s.List(ctx)
	if err != nil {
		return domain.TrendingItem{}, err
	}
	if len(existing) >= domain.MaxTrendingItems {
		return domain.TrendingItem{}, apperr.NewConflict(msgTrendingFull)
	}

	item := domain.TrendingItem{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ImageBase64: in.ImageBase64,
		Timestamp:   s.now().UTC(),
	}
	if item.Title == "" {
		item.Title = domain.DefaultTrendingTitle
	}

	id, err := s.ds.Add(ctx, storage.CollectionTrending, storage.Fields{
		domain.FieldTitle:       item.Title,
		domain.FieldDescription: item.Description,
		domain.FieldImage:       item.ImageBase64,
		domain.FieldHidden:      false,
		domain.FieldTimestamp:   item.Timestamp,
	})
	if err != nil {
		return domain.TrendingItem{}, fmt.Errorf("failed to add trending item: %w", err)
	}
	item.ID = id

	slog.Info("trending item added", "id", id, "title", item.Title)
	return item, nil
}

func (s *TrendingService) Rename(ctx context.Context, id, title string) (domain.TrendingItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.TrendingItem{}, apperr.NewValidationFields("title is required", map[string]string{"title": "title is required"})
	}

	if err := s.update(ctx, id, storage.Fields{domain.FieldTitle: title}); err != nil {
		return domain.TrendingItem{}, err
	}
	return s.get(ctx, id)
}

// ToggleHidden flips the hidden flag and moves the item to the top of the
// list.
func (s *TrendingService) ToggleHidden(ctx context.Context, id string) (domain.TrendingItem, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return domain.TrendingItem{}, err
	}

	patch := storage.Fields{
		domain.FieldHidden:    !item.IsHidden,
		domain.FieldTimestamp: s.now().UTC(),
	}
	if err := s.update(ctx, id, patch); err != nil {
		return domain.TrendingItem{}, err
	}

	slog.Info("trending item toggled", "id", id, "hidden", !item.IsHidden)
	return s.get(ctx, id)
}

func (s *TrendingService) get(ctx context.Context, id string) (domain.TrendingItem, error) {
	doc, err := s.ds.Get(ctx, storage.CollectionTrending, id)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.TrendingItem{}, apperr.NewNotFound("trending item", id, err)
	}
	if err != nil {
		return domain.TrendingItem{}, fmt.Errorf("failed to get trending item: %w", err)
	}
	return domain.TrendingItemFromDocument(doc), nil
}

func (s *TrendingService) update(ctx context.Context, id string, patch storage.Fields) error {
	err := s.ds.Update(ctx, storage.CollectionTrending, id, patch)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NewNotFound("trending item", id, err)
	}
	if err != nil {
		return fmt.Errorf("failed to update trending item: %w", err)
	}
	return nil
}
