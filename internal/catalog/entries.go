package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/media"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/DjordjeVuckovic/media-catalog/internal/validate"
)

// MsgRequiredFields is shown when an entry form misses a required field.
const MsgRequiredFields = "All fields marked with * are required."

// LatestCount is the size of the "latest" listing.
const LatestCount = 10

type EntryInput struct {
	Title       string `json:"title" form:"title" validate:"notblank"`
	Description string `json:"description" form:"description" validate:"notblank"`
	Category    string `json:"category" form:"category" validate:"notblank"`
	ImageBase64 string `json:"imageBase64" form:"imageBase64" validate:"notblank"`
	Link        string `json:"link,omitempty" form:"link" validate:"omitempty,url"`
}

func (in EntryInput) entry() domain.Entry {
	return domain.Entry{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		ImageBase64: in.ImageBase64,
		Link:        strings.TrimSpace(in.Link),
	}
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for timestamps written by the services.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// EntryService manages catalog entries.
type EntryService struct {
	ds        storage.DataSource
	validator *validate.Validator
	now       func() time.Time
}

func NewEntryService(ds storage.DataSource, v *validate.Validator, opts ...Option) *EntryService {
	o := buildOptions(opts)
	return &EntryService{ds: ds, validator: v, now: o.now}
}

// List returns all entries, newest first.
func (s *EntryService) List(ctx context.Context) ([]domain.Entry, error) {
	return s.list(ctx, 0)
}

// Latest returns the LatestCount newest entries.
func (s *EntryService) Latest(ctx context.Context) ([]domain.Entry, error) {
	return s.list(ctx, LatestCount)
}

func (s *EntryService) list(ctx context.Context, limit int) ([]domain.Entry, error) {
	docs, err := s.ds.QueryOrdered(ctx, storage.CollectionEntries, domain.FieldCreatedAt, storage.Desc, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return domain.EntriesFromDocuments(docs), nil
}

func (s *EntryService) Get(ctx context.Context, id string) (domain.Entry, error) {
	doc, err := s.ds.Get(ctx, storage.CollectionEntries, id)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Entry{}, apperr.NewNotFound("entry", id, err)
	}
	if err != nil {
		return domain.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return domain.EntryFromDocument(doc), nil
}

func (s *EntryService) Add(ctx context.Context, in EntryInput) (domain.Entry, error) {
	if err := s.check(in); err != nil {
		return domain.Entry{}, err
	}

	e := in.entry()
	e.CreatedAt = s.now().UTC()

	fields := e.Fields()
	fields[domain.FieldCreatedAt] = e.CreatedAt

	id, err := s.ds.Add(ctx, storage.CollectionEntries, fields)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("failed to add entry: %w", err)
	}
	e.ID = id

	slog.Info("entry added", "id", id, "title", e.Title)
	return e, nil
}

// Update replaces the editable fields of an entry and returns it re-read
// from the store.
func (s *EntryService) Update(ctx context.Context, id string, in EntryInput) (domain.Entry, error) {
	if err := s.check(in); err != nil {
		return domain.Entry{}, err
	}

	err := s.ds.Update(ctx, storage.CollectionEntries, id, in.entry().Fields())
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Entry{}, apperr.NewNotFound("entry", id, err)
	}
	if err != nil {
		return domain.Entry{}, fmt.Errorf("failed to update entry: %w", err)
	}

	slog.Info("entry updated", "id", id)
	return s.Get(ctx, id)
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	err := s.ds.Delete(ctx, storage.CollectionEntries, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NewNotFound("entry", id, err)
	}
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	slog.Info("entry deleted", "id", id)
	return nil
}

func (s *EntryService) check(in EntryInput) error {
	if err := s.validator.Struct(in, MsgRequiredFields); err != nil {
		return err
	}
	if !media.IsDataURL(in.ImageBase64) {
		return apperr.NewValidationFields(MsgRequiredFields, map[string]string{
			"imageBase64": "imageBase64 must be an image data URL",
		})
	}
	return nil
}
