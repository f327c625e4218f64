package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx is the subset of pgxpool.Pool used by Store.
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Store keeps documents as JSONB rows in the documents table.
type Store struct {
	db           dbtx
	pool         *ConnectionPool
	queryTimeout time.Duration
}

type StoreOption func(*Store)

func WithQueryTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.queryTimeout = d
	}
}

func NewStore(pool *ConnectionPool, opts ...StoreOption) *Store {
	s := newStore(pool.GetConn(), opts...)
	s.pool = pool
	return s
}

func newStore(db dbtx, opts ...StoreOption) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const prefixSQL = `
	SELECT id::text, data
	FROM documents
	WHERE collection = $1
	  AND (data ->> $2) COLLATE "C" >= $3
	  AND (data ->> $2) COLLATE "C" <= $4
	ORDER BY (data ->> $2) COLLATE "C", seq
`

func (s *Store) QueryPrefix(ctx context.Context, collection, field, prefix string) ([]storage.Document, error) {
	slog.Debug("Executing pg prefix query", "collection", collection, "field", field, "prefix", prefix)

	queryCtx, cancel := s.newQueryCtx(ctx)
	defer cancel()

	rows, err := s.db.Query(queryCtx, prefixSQL, collection, field, prefix, prefix+storage.PrefixUpperBound)
	if err != nil {
		return nil, fmt.Errorf("failed to execute prefix query: %w", err)
	}
	return scanDocuments(rows)
}

func (s *Store) QueryOrdered(ctx context.Context, collection, orderField string, dir storage.Direction, limit int) ([]storage.Document, error) {
	if !dir.Valid() {
		return nil, fmt.Errorf("invalid sort direction: %q", dir)
	}

	queryCtx, cancel := s.newQueryCtx(ctx)
	defer cancel()

	sql, args := orderedSQL(collection, orderField, dir, limit)
	rows, err := s.db.Query(queryCtx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ordered query: %w", err)
	}
	return scanDocuments(rows)
}

// orderedSQL builds the listing query. dir is validated by the caller and is
// the only value interpolated into the statement.
func orderedSQL(collection, orderField string, dir storage.Direction, limit int) (string, []any) {
	order := "ASC"
	if dir == storage.Desc {
		order = "DESC"
	}

	sql := fmt.Sprintf(`
	SELECT id::text, data
	FROM documents
	WHERE collection = $1
	ORDER BY (data ->> $2) COLLATE "C" %[1]s NULLS LAST, seq %[1]s`, order)
	args := []any{collection, orderField}

	if limit > 0 {
		sql += "\n\tLIMIT $3"
		args = append(args, limit)
	}
	return sql, args
}

func (s *Store) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return storage.Document{}, fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}

	queryCtx, cancel := s.newQueryCtx(ctx)
	defer cancel()

	var data []byte
	err := s.db.QueryRow(queryCtx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Document{}, fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	if err != nil {
		return storage.Document{}, fmt.Errorf("failed to get document: %w", err)
	}

	fields, err := decodeFields(data)
	if err != nil {
		return storage.Document{}, err
	}
	return storage.Document{ID: id, Fields: fields}, nil
}

func (s *Store) Add(ctx context.Context, collection string, fields storage.Fields) (string, error) {
	data, err := json.Marshal(fields.Normalize())
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	queryCtx, cancel := s.newQueryCtx(ctx)
	defer cancel()

	id := uuid.New().String()
	_, err = s.db.Exec(queryCtx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		collection, id, data,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	slog.Info("document inserted", "collection", collection, "id", id)
	return id, nil
}

func (s *Store) AddBulk(ctx context.Context, collection string, docs []storage.Fields) error {
	if len(docs) == 0 {
		return nil
	}

	rows := make([][]any, len(docs))
	for i, fields := range docs {
		data, err := json.Marshal(fields.Normalize())
		if err != nil {
			return fmt.Errorf("failed to marshal document %d: %w", i, err)
		}
		rows[i] = []any{collection, uuid.New(), data}
	}

	queryCtx, cancel := s.newQueryCtx(ctx)
	defer cancel()

	n, err := s.db.CopyFrom(
		queryCtx,
		pgx.Identifier{"documents"},
		[]string{"collection", "id", "data"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert documents: %w", err)
	}

	slog.Info("Bulk insert completed", "collection", collection, "inserted", n, "total", len(docs))
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch storage.Fields) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}

	data, err := json.Marshal(patch.Normalize())
	if err != nil {
		return fmt.Errorf("failed to marshal patch: %w", err)
	}

	queryCtx, cancel := s.newQueryCtx(ctx)
	defer cancel()

	tag, err := s.db.Exec(queryCtx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = now() WHERE collection = $1 AND id = $2`,
		collection, id, data,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}

	queryCtx, cancel := s.newQueryCtx(ctx)
	defer cancel()

	tag, err := s.db.Exec(queryCtx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return errors.New("pg store has no connection pool")
	}
	return s.pool.Ping(ctx)
}

func (s *Store) newQueryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return ctx, func() {
		// no-op
	}
}

func scanDocuments(rows pgx.Rows) ([]storage.Document, error) {
	defer rows.Close()

	var docs []storage.Document
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		fields, err := decodeFields(data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, storage.Document{ID: id, Fields: fields})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return docs, nil
}

func decodeFields(data []byte) (storage.Fields, error) {
	fields := storage.Fields{}
	if len(data) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document data: %w", err)
	}
	return fields, nil
}

var (
	_ storage.DataSource = (*Store)(nil)
	_ storage.BulkAdder  = (*Store)(nil)
	_ storage.Pinger     = (*Store)(nil)
)
