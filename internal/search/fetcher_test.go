package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEntries(t *testing.T, ds storage.DataSource, titles ...string) {
	t.Helper()
	for _, title := range titles {
		_, err := ds.Add(context.Background(), storage.CollectionEntries, domain.Entry{Title: title, Category: "Movie"}.Fields())
		require.NoError(t, err)
	}
}

func TestFetcher_Fetch(t *testing.T) {
	ds := in_mem.NewStore()
	seedEntries(t, ds, "The Thing", "Them!", "Heat", "THX 1138")
	f := NewFetcher(ds)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "prefix is case insensitive", query: "THE", want: []string{"The Thing", "Them!"}},
		{name: "single match", query: "he", want: []string{"Heat"}},
		{name: "infix does not match", query: "thing", want: []string{}},
		{name: "shared first letters", query: "th", want: []string{"The Thing", "Them!", "THX 1138"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Fetch(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titlesOf(got))
		})
	}
}

func TestFetcher_EmptyQuerySkipsStore(t *testing.T) {
	got, err := NewFetcher(failingStore{}).Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetcher_PropagatesStoreError(t *testing.T) {
	_, err := NewFetcher(failingStore{}).Fetch(context.Background(), "a")
	assert.Error(t, err)
}

func TestTrendingProvider_NewestFirstWithoutHidden(t *testing.T) {
	ctx := context.Background()
	ds := in_mem.NewStore()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	items := []struct {
		title  string
		hidden bool
		age    time.Duration
	}{
		{"oldest", false, 3 * time.Hour},
		{"hidden", true, 0},
		{"newest", false, time.Minute},
		{"middle", false, time.Hour},
	}
	for _, it := range items {
		_, err := ds.Add(ctx, storage.CollectionTrending, storage.Fields{
			domain.FieldTitle:     it.title,
			domain.FieldHidden:    it.hidden,
			domain.FieldTimestamp: base.Add(-it.age),
		})
		require.NoError(t, err)
	}

	got, err := NewTrendingProvider(ds).Trending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, titlesOf(got))
}

func TestTrendingProvider_ConcurrentCallers(t *testing.T) {
	ds := in_mem.NewStore()
	_, err := ds.Add(context.Background(), storage.CollectionTrending, storage.Fields{
		domain.FieldTitle:     "Dune",
		domain.FieldTimestamp: time.Now(),
	})
	require.NoError(t, err)
	p := NewTrendingProvider(ds)

	var wg sync.WaitGroup
	results := make([][]domain.Suggestion, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Trending(context.Background())
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, []string{"Dune"}, titlesOf(r))
	}
	results[0][0].Title = "mutated"
	assert.Equal(t, "Dune", results[1][0].Title)
}

// slowTrendingStore holds QueryOrdered until release is closed or its
// context ends.
type slowTrendingStore struct {
	failingStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *slowTrendingStore) QueryOrdered(ctx context.Context, _, _ string, _ storage.Direction, _ int) ([]storage.Document, error) {
	s.once.Do(func() { close(s.entered) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.release:
	}
	return []storage.Document{{ID: "1", Fields: storage.Fields{domain.FieldTitle: "Dune"}}}, nil
}

func TestTrendingProvider_CancelledCallerDoesNotFailOthers(t *testing.T) {
	ds := &slowTrendingStore{entered: make(chan struct{}), release: make(chan struct{})}
	p := NewTrendingProvider(ds)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := p.Trending(ctxA)
		errA <- err
	}()
	<-ds.entered

	type result struct {
		items []domain.Suggestion
		err   error
	}
	resB := make(chan result, 1)
	go func() {
		items, err := p.Trending(context.Background())
		resB <- result{items, err}
	}()

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	time.Sleep(20 * time.Millisecond)
	close(ds.release)

	select {
	case r := <-resB:
		require.NoError(t, r.err)
		assert.Equal(t, []string{"Dune"}, titlesOf(r.items))
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never returned")
	}
}

var errStoreDown = errors.New("store down")

type failingStore struct{}

func (failingStore) QueryPrefix(context.Context, string, string, string) ([]storage.Document, error) {
	return nil, errStoreDown
}

func (failingStore) QueryOrdered(context.Context, string, string, storage.Direction, int) ([]storage.Document, error) {
	return nil, errStoreDown
}

func (failingStore) Get(context.Context, string, string) (storage.Document, error) {
	return storage.Document{}, errStoreDown
}

func (failingStore) Add(context.Context, string, storage.Fields) (string, error) {
	return "", errStoreDown
}

func (failingStore) Update(context.Context, string, string, storage.Fields) error {
	return errStoreDown
}

func (failingStore) Delete(context.Context, string, string) error {
	return errStoreDown
}
