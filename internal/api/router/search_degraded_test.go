package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/DjordjeVuckovic/media-catalog/internal/catalog"
	"github.com/DjordjeVuckovic/media-catalog/internal/search"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/DjordjeVuckovic/media-catalog/internal/validate"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

// downStore fails every call.
type downStore struct{}

func (downStore) QueryPrefix(context.Context, string, string, string) ([]storage.Document, error) {
	return nil, errStoreDown
}

func (downStore) QueryOrdered(context.Context, string, string, storage.Direction, int) ([]storage.Document, error) {
	return nil, errStoreDown
}

func (downStore) Get(context.Context, string, string) (storage.Document, error) {
	return storage.Document{}, errStoreDown
}

func (downStore) Add(context.Context, string, storage.Fields) (string, error) {
	return "", errStoreDown
}

func (downStore) Update(context.Context, string, string, storage.Fields) error {
	return errStoreDown
}

func (downStore) Delete(context.Context, string, string) error {
	return errStoreDown
}

func TestSearchRouter_StoreDownFallsBackToEmpty(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	ds := downStore{}
	NewSearchRouter(e, search.NewFetcher(ds), search.NewTrendingProvider(ds), catalog.NewEntryService(ds, validate.New())).Bind()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "suggestions", path: "/api/suggestions?q=du", want: `{"query":"du","suggestions":[]}`},
		{name: "trending", path: "/api/trending", want: `[]`},
		{
			name: "entries",
			path: "/api/entries?search=du",
			want: `{"items":[],"page":1,"size":10,"total":0,"totalPages":0,"hasPagination":false,"query":"du","category":""}`,
		},
		{
			name: "latest entries",
			path: "/api/entries?latest=true",
			want: `{"items":[],"page":1,"size":1,"total":0,"totalPages":0,"hasPagination":false,"query":"","category":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}

	t.Run("single entry still reports the failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/entries/abc", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	})
}
