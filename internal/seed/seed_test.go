package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/media-catalog/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "data:image/png;base64,iVBORw0KGgo="

const seedYAML = `
entries:
  - title: The Matrix
    description: A hacker learns the truth
    category: Movie
    image: "data:image/png;base64,iVBORw0KGgo="
    link: https://example.com/matrix
  - title: Alien
    description: In space no one can hear you scream
    category: Movie
    imageFile: poster.png
    createdAt: 2020-05-01T10:00:00Z
trending:
  - title: Dune
  - title: ""
    hidden: true
`

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
}

func TestYAMLLoader_Load(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "valid", input: seedYAML},
		{name: "empty document", input: ""},
		{name: "unknown field", input: "entries:\n  - titel: typo\n", wantErr: "field titel not found"},
		{name: "missing image", input: "entries:\n  - title: A\n    description: B\n    category: C\n", wantErr: "image or imageFile is required"},
		{
			name:    "too many trending",
			input:   "trending:\n" + strings.Repeat("  - title: x\n", domain.MaxTrendingItems+1),
			wantErr: "at most 6 allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewYAMLLoader(strings.NewReader(tt.input)).Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, f)
		})
	}
}

func writePoster(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "poster.png"), png, 0o600))
	return dir
}

func TestImporter_Run(t *testing.T) {
	dir := writePoster(t)
	f, err := NewYAMLLoader(strings.NewReader(seedYAML)).Load()
	require.NoError(t, err)

	ds := in_mem.NewStore()
	im := NewImporter(ds, validate.New(), WithBaseDir(dir), WithClock(fixedClock()), WithBatchSize(1))

	stats, err := im.Run(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 2, Trending: 2}, stats)

	docs, err := ds.QueryOrdered(context.Background(), storage.CollectionEntries, domain.FieldCreatedAt, storage.Desc, 0)
	require.NoError(t, err)
	entries := domain.EntriesFromDocuments(docs)
	require.Len(t, entries, 2)
	assert.Equal(t, "The Matrix", entries[0].Title)
	assert.Equal(t, "Alien", entries[1].Title)
	assert.Equal(t, time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC), entries[1].CreatedAt)
	assert.True(t, strings.HasPrefix(entries[1].ImageBase64, "data:image/png;base64,"))

	prefixed, err := ds.QueryPrefix(context.Background(), storage.CollectionEntries, domain.FieldTitleLowercase, "the")
	require.NoError(t, err)
	assert.Len(t, prefixed, 1)

	tdocs, err := ds.QueryOrdered(context.Background(), storage.CollectionTrending, domain.FieldTimestamp, storage.Desc, 0)
	require.NoError(t, err)
	require.Len(t, tdocs, 2)
	first := domain.TrendingItemFromDocument(tdocs[0])
	second := domain.TrendingItemFromDocument(tdocs[1])
	assert.Equal(t, "Dune", first.Title)
	assert.False(t, first.IsHidden)
	assert.Equal(t, domain.DefaultTrendingTitle, second.Title)
	assert.True(t, second.IsHidden)
}

// addOnly hides the bulk path of the in-memory store.
type addOnly struct {
	storage.DataSource
	adds int
}

func (a *addOnly) Add(ctx context.Context, collection string, fields storage.Fields) (string, error) {
	a.adds++
	return a.DataSource.Add(ctx, collection, fields)
}

func TestImporter_FallsBackToAdd(t *testing.T) {
	ds := &addOnly{DataSource: in_mem.NewStore()}
	f := &File{Entries: []EntryRecord{
		{Title: "A", Description: "a", Category: "Movie", Image: testImage},
		{Title: "B", Description: "b", Category: "Movie", Image: testImage},
	}}

	stats, err := NewImporter(ds, validate.New()).Run(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 2, ds.adds)
}

func TestImporter_Rejects(t *testing.T) {
	tests := []struct {
		name string
		file *File
	}{
		{
			name: "blank title",
			file: &File{Entries: []EntryRecord{{Title: " ", Description: "d", Category: "c", Image: testImage}}},
		},
		{
			name: "image is not a data url",
			file: &File{Entries: []EntryRecord{{Title: "t", Description: "d", Category: "c", Image: "http://x"}}},
		},
		{
			name: "missing image file",
			file: &File{Entries: []EntryRecord{{Title: "t", Description: "d", Category: "c", ImageFile: "nope.png"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := in_mem.NewStore()
			_, err := NewImporter(ds, validate.New(), WithBaseDir(t.TempDir())).Run(context.Background(), tt.file)
			require.Error(t, err)

			docs, err := ds.QueryOrdered(context.Background(), storage.CollectionEntries, domain.FieldCreatedAt, storage.Desc, 0)
			require.NoError(t, err)
			assert.Empty(t, docs)
		})
	}
}

func TestImporter_TrendingLimitCountsExisting(t *testing.T) {
	ds := in_mem.NewStore()
	for range domain.MaxTrendingItems {
		_, err := ds.Add(context.Background(), storage.CollectionTrending, storage.Fields{domain.FieldTitle: "x"})
		require.NoError(t, err)
	}

	_, err := NewImporter(ds, validate.New()).Run(context.Background(), &File{Trending: []TrendingRecord{{Title: "one more"}}})
	assert.Error(t, err)
}
