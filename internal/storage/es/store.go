package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/fieldtype"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

// maxResultWindow is the default index.max_result_window.
const maxResultWindow = 10_000

// Store keeps each collection in its own index.
type Store struct {
	client       *elasticsearch.TypedClient
	config       ClientConfig
	indexBuilder *IndexBuilder
}

func NewStore(ctx context.Context, config ClientConfig, collections ...string) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	s := &Store{
		client:       client,
		config:       config,
		indexBuilder: NewIndexBuilder(),
	}

	for _, c := range collections {
		if err := s.EnsureIndex(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to ensure index exists: %w", err)
		}
	}

	return s, nil
}

func (s *Store) QueryPrefix(ctx context.Context, collection, field, prefix string) ([]storage.Document, error) {
	index := s.config.indexName(collection)
	slog.Debug("Executing es prefix query", "index", index, "field", field, "prefix", prefix)

	rangeField := s.indexBuilder.sortField(field)
	upper := prefix + storage.PrefixUpperBound
	lower := prefix

	asc := sortorder.Asc
	res, err := s.client.Search().
		Index(index).
		Query(&types.Query{
			Range: map[string]types.RangeQuery{
				rangeField: types.TermRangeQuery{
					Gte: &lower,
					Lte: &upper,
				},
			},
		}).
		Sort(&types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				rangeField: {Order: &asc},
			},
		}).
		Size(maxResultWindow).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch prefix query failed", "error", err, "index", index)
		return nil, fmt.Errorf("failed to execute prefix query: %w", err)
	}

	return mapHits(res.Hits.Hits)
}

func (s *Store) QueryOrdered(ctx context.Context, collection, orderField string, dir storage.Direction, limit int) ([]storage.Document, error) {
	if !dir.Valid() {
		return nil, fmt.Errorf("invalid sort direction: %q", dir)
	}

	order := sortorder.Asc
	if dir == storage.Desc {
		order = sortorder.Desc
	}

	size := maxResultWindow
	if limit > 0 && limit < size {
		size = limit
	}

	unmapped := s.unmappedType(orderField)
	res, err := s.client.Search().
		Index(s.config.indexName(collection)).
		Query(&types.Query{MatchAll: types.NewMatchAllQuery()}).
		Sort(&types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				s.indexBuilder.sortField(orderField): {Order: &order, UnmappedType: &unmapped},
			},
		}).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ordered query: %w", err)
	}

	return mapHits(res.Hits.Hits)
}

func (s *Store) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	res, err := s.client.Get(s.config.indexName(collection), id).Do(ctx)
	if isNotFound(err) {
		return storage.Document{}, fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	if err != nil {
		return storage.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	if !res.Found {
		return storage.Document{}, fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}

	fields, err := decodeSource(res.Source_)
	if err != nil {
		return storage.Document{}, err
	}
	return storage.Document{ID: id, Fields: fields}, nil
}

func (s *Store) Add(ctx context.Context, collection string, fields storage.Fields) (string, error) {
	index := s.config.indexName(collection)
	id := uuid.New().String()

	res, err := s.client.Index(index).
		Id(id).
		Document(fields.Normalize()).
		Refresh(refresh.True).
		Do(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to index document: %w", err)
	}

	slog.Info("document indexed successfully", "id", id, "index", index, "result", res.Result)
	return id, nil
}

func (s *Store) AddBulk(ctx context.Context, collection string, docs []storage.Fields) error {
	if len(docs) == 0 {
		return nil
	}
	index := s.config.indexName(collection)

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         index,
		Client:        s.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
		Refresh:       "true",
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed int64

	for _, fields := range docs {
		id := uuid.New().String()

		docBytes, err := json.Marshal(fields.Normalize())
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", id)
			failed++
			continue
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: id,
				Body:       bytes.NewReader(docBytes),
				OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
					successful++
				},
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					failed++
					if err != nil {
						slog.Error("bulk index error", "error", err, "id", item.DocumentID)
					} else {
						slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
					}
				},
			},
		)
		if err != nil {
			failed++
			slog.Error("failed to add document to bulk indexer", "error", err, "id", id)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Bulk indexing completed",
		"successful", successful,
		"failed", failed,
		"total", len(docs),
		"index", index)

	if failed > 0 {
		return fmt.Errorf("failed to index %d out of %d documents", failed, len(docs))
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch storage.Fields) error {
	body, err := json.Marshal(map[string]any{"doc": patch.Normalize()})
	if err != nil {
		return fmt.Errorf("failed to marshal patch: %w", err)
	}

	_, err = s.client.Update(s.config.indexName(collection), id).
		Raw(bytes.NewReader(body)).
		Refresh(refresh.True).
		Do(ctx)
	if isNotFound(err) {
		return fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.client.Delete(s.config.indexName(collection), id).
		Refresh(refresh.True).
		Do(ctx)
	if isNotFound(err) {
		return fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if res.Result.String() == "not_found" {
		return fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	ok, err := s.client.Ping().Do(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("elasticsearch ping failed")
	}
	return nil
}

func (s *Store) EnsureIndex(ctx context.Context, collection string) error {
	index := s.config.indexName(collection)

	exists, err := s.client.Indices.Exists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Info("Index already exists", "index", index)
		return nil
	}

	settings := s.indexBuilder.buildSettings()
	mappings := s.indexBuilder.buildMapping()

	createRes, err := s.client.Indices.Create(index).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", index)
	return nil
}

// unmappedType lets sorting succeed on indexes without the field.
func (s *Store) unmappedType(field string) fieldtype.FieldType {
	switch field {
	case "created_at", "timestamp":
		return fieldtype.Date
	case "isHidden":
		return fieldtype.Boolean
	default:
		return fieldtype.Keyword
	}
}

func mapHits(hits []types.Hit) ([]storage.Document, error) {
	docs := make([]storage.Document, 0, len(hits))
	for _, hit := range hits {
		fields, err := decodeSource(hit.Source_)
		if err != nil {
			return nil, err
		}
		docs = append(docs, storage.Document{ID: hitID(hit), Fields: fields})
	}
	return docs, nil
}

// hitID reads _id, which the typed API models as optional.
func hitID(hit types.Hit) string {
	switch v := any(hit.Id_).(type) {
	case *string:
		if v != nil {
			return *v
		}
	case string:
		return v
	}
	return ""
}

func decodeSource(src json.RawMessage) (storage.Fields, error) {
	fields := storage.Fields{}
	if len(src) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(src, &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return fields, nil
}

func isNotFound(err error) bool {
	var esErr *types.ElasticsearchError
	return errors.As(err, &esErr) && esErr.Status == http.StatusNotFound
}

var (
	_ storage.DataSource = (*Store)(nil)
	_ storage.BulkAdder  = (*Store)(nil)
	_ storage.Pinger     = (*Store)(nil)
)
