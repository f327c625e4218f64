package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/media-catalog/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "data:image/png;base64,iVBORw0KGgo="

// stepClock advances one minute per call.
func stepClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newEntryService(t *testing.T) (*EntryService, *in_mem.Store) {
	t.Helper()
	ds := in_mem.NewStore()
	return NewEntryService(ds, validate.New(), WithClock(stepClock())), ds
}

func validInput(title string) EntryInput {
	return EntryInput{
		Title:       title,
		Description: "about " + title,
		Category:    "Movie",
		ImageBase64: testImage,
	}
}

func TestEntryService_Add(t *testing.T) {
	s, ds := newEntryService(t)

	e, err := s.Add(context.Background(), validInput("  The Matrix "))
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "The Matrix", e.Title)

	doc, err := ds.Get(context.Background(), storage.CollectionEntries, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "the matrix", doc.String(domain.FieldTitleLowercase))
	assert.Equal(t, storage.FormatTime(e.CreatedAt), doc.String(domain.FieldCreatedAt))
}

func TestEntryService_AddValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*EntryInput)
		wantField string
	}{
		{name: "missing title", mutate: func(in *EntryInput) { in.Title = "" }, wantField: "title"},
		{name: "blank description", mutate: func(in *EntryInput) { in.Description = "  " }, wantField: "description"},
		{name: "missing category", mutate: func(in *EntryInput) { in.Category = "" }, wantField: "category"},
		{name: "missing image", mutate: func(in *EntryInput) { in.ImageBase64 = "" }, wantField: "imageBase64"},
		{name: "image not a data url", mutate: func(in *EntryInput) { in.ImageBase64 = "https://x/y.png" }, wantField: "imageBase64"},
		{name: "bad link", mutate: func(in *EntryInput) { in.Link = "nope" }, wantField: "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ds := newEntryService(t)
			in := validInput("Heat")
			tt.mutate(&in)

			_, err := s.Add(context.Background(), in)

			var ve *apperr.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, MsgRequiredFields, ve.Message)
			assert.Contains(t, ve.Fields, tt.wantField)

			all, err := ds.QueryOrdered(context.Background(), storage.CollectionEntries, domain.FieldCreatedAt, storage.Desc, 0)
			require.NoError(t, err)
			assert.Empty(t, all, "nothing is written on invalid input")
		})
	}
}

func TestEntryService_ListAndLatest(t *testing.T) {
	s, _ := newEntryService(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_, err := s.Add(ctx, validInput(fmt.Sprintf("title %02d", i)))
		require.NoError(t, err)
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 12)
	assert.Equal(t, "title 11", all[0].Title, "newest first")

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, LatestCount)
	assert.Equal(t, "title 11", latest[0].Title)
}

func TestEntryService_UpdateRefreshesLowercaseTitle(t *testing.T) {
	s, ds := newEntryService(t)
	ctx := context.Background()
	e, err := s.Add(ctx, validInput("Heat"))
	require.NoError(t, err)

	in := validInput("Heat 2")
	in.Link = "https://example.com/heat"
	updated, err := s.Update(ctx, e.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Heat 2", updated.Title)
	assert.Equal(t, "https://example.com/heat", updated.Link)
	assert.True(t, e.CreatedAt.Equal(updated.CreatedAt), "created_at is kept")

	doc, err := ds.Get(ctx, storage.CollectionEntries, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "heat 2", doc.String(domain.FieldTitleLowercase))
}

func TestEntryService_NotFound(t *testing.T) {
	s, _ := newEntryService(t)
	ctx := context.Background()

	var nf *apperr.NotFoundError

	_, err := s.Get(ctx, "missing")
	assert.True(t, errors.As(err, &nf))

	_, err = s.Update(ctx, "missing", validInput("x"))
	assert.True(t, errors.As(err, &nf))

	err = s.Delete(ctx, "missing")
	assert.True(t, errors.As(err, &nf))
}

func TestEntryService_Delete(t *testing.T) {
	s, _ := newEntryService(t)
	ctx := context.Background()
	e, err := s.Add(ctx, validInput("Heat"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, e.ID))

	_, err = s.Get(ctx, e.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
