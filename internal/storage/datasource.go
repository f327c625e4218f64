package storage

import (
	"context"
	"errors"
)

// Collection names used by the catalog.
const (
	CollectionEntries  = "searchResults"
	CollectionTrending = "trending"
)

// PrefixUpperBound is appended to a prefix to build the upper end of a
// "starts with" range query.
const PrefixUpperBound = "\uf8ff"

var ErrNotFound = errors.New("document not found")

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// DataSource is the document store the catalog runs on.
// Documents are schemaless field maps grouped in named collections.
type DataSource interface {
	// QueryPrefix returns every document whose field value v satisfies
	// prefix <= v <= prefix+PrefixUpperBound in byte order.
	// Callers normalize case before calling.
	QueryPrefix(ctx context.Context, collection, field, prefix string) ([]Document, error)
	// QueryOrdered returns documents sorted by orderField.
	// A limit <= 0 returns all documents.
	QueryOrdered(ctx context.Context, collection, orderField string, dir Direction, limit int) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Add(ctx context.Context, collection string, fields Fields) (string, error)
	Update(ctx context.Context, collection, id string, patch Fields) error
	Delete(ctx context.Context, collection, id string) error
}

// BulkAdder is implemented by stores that can load many documents at once.
type BulkAdder interface {
	AddBulk(ctx context.Context, collection string, docs []Fields) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
