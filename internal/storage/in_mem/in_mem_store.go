package in_mem

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/google/uuid"
)

type record struct {
	seq    uint64
	fields storage.Fields
}

// Store keeps collections in process memory. It backs local runs and tests.
type Store struct {
	storageLock sync.RWMutex
	collections map[string]map[string]record
	seq         uint64
}

func NewStore() *Store {
	return &Store{
		collections: make(map[string]map[string]record),
	}
}

func (s *Store) QueryPrefix(_ context.Context, collection, field, prefix string) ([]storage.Document, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	var matched []storage.Document
	for _, doc := range s.sorted(collection) {
		if storage.InPrefixRange(doc.String(field), prefix) {
			matched = append(matched, doc)
		}
	}

	// Range scans come back in index order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SortKey(field) < matched[j].SortKey(field)
	})
	return matched, nil
}

func (s *Store) QueryOrdered(_ context.Context, collection, orderField string, dir storage.Direction, limit int) ([]storage.Document, error) {
	if !dir.Valid() {
		return nil, fmt.Errorf("invalid sort direction: %q", dir)
	}

	s.storageLock.RLock()
	docs := s.sorted(collection)
	s.storageLock.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		a, b := docs[i].SortKey(orderField), docs[j].SortKey(orderField)
		if dir == storage.Desc {
			return a > b
		}
		return a < b
	})

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (s *Store) Get(_ context.Context, collection, id string) (storage.Document, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	r, ok := s.collections[collection][id]
	if !ok {
		return storage.Document{}, fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	return storage.Document{ID: id, Fields: r.fields.Merge(nil)}, nil
}

func (s *Store) Add(_ context.Context, collection string, fields storage.Fields) (string, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	id := uuid.New().String()
	s.put(collection, id, fields)
	slog.Debug("document added to in-memory storage", "collection", collection, "id", id)
	return id, nil
}

func (s *Store) AddBulk(_ context.Context, collection string, docs []storage.Fields) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, fields := range docs {
		s.put(collection, uuid.New().String(), fields)
	}
	slog.Info("Bulk add to in-memory storage completed", "collection", collection, "total", len(docs))
	return nil
}

func (s *Store) Update(_ context.Context, collection, id string, patch storage.Fields) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	r, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	r.fields = r.fields.Merge(patch)
	s.collections[collection][id] = r
	return nil
}

func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) put(collection, id string, fields storage.Fields) {
	c, ok := s.collections[collection]
	if !ok {
		c = make(map[string]record)
		s.collections[collection] = c
	}
	s.seq++
	c[id] = record{seq: s.seq, fields: fields.Normalize()}
}

// sorted returns copies of the collection's documents in insertion order.
// Callers hold the lock.
func (s *Store) sorted(collection string) []storage.Document {
	c := s.collections[collection]
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return c[ids[i]].seq < c[ids[j]].seq })

	docs := make([]storage.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, storage.Document{ID: id, Fields: c[id].fields.Merge(nil)})
	}
	return docs
}

var (
	_ storage.DataSource = (*Store)(nil)
	_ storage.BulkAdder  = (*Store)(nil)
	_ storage.Pinger     = (*Store)(nil)
)
