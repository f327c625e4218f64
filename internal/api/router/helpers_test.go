package router

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/DjordjeVuckovic/media-catalog/internal/auth"
	"github.com/DjordjeVuckovic/media-catalog/internal/catalog"
	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/search"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/media-catalog/internal/validate"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testImage    = "data:image/png;base64,iVBORw0KGgo="
	testEmail    = "admin@example.com"
	testPassword = "s3cret"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testApp struct {
	e        *echo.Echo
	ds       *in_mem.Store
	entries  *catalog.EntryService
	trending *catalog.TrendingService
	tokens   *auth.Tokens
	token    string
}

func newTestApp(t *testing.T, liveOpts ...LiveRouterOption) *testApp {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	ds := in_mem.NewStore()
	v := validate.New()
	entries := catalog.NewEntryService(ds, v)
	trending := catalog.NewTrendingService(ds)
	tokens := auth.NewTokens(testSecret, auth.DefaultIssuer, time.Hour)
	fetcher := search.NewFetcher(ds)
	provider := search.NewTrendingProvider(ds)

	NewSearchRouter(e, fetcher, provider, entries).Bind()
	NewAuthRouter(e, auth.NewAuthenticator(testEmail, string(hash)), tokens, v).Bind()
	NewAdminRouter(e, tokens, entries).Bind()
	NewTrendingRouter(e, tokens, trending).Bind()
	NewLiveRouter(e, fetcher, provider, entries, liveOpts...).Bind()

	token, _, err := tokens.Issue(testEmail)
	require.NoError(t, err)

	return &testApp{
		e:        e,
		ds:       ds,
		entries:  entries,
		trending: trending,
		tokens:   tokens,
		token:    token,
	}
}

func (a *testApp) do(method, path, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) addEntry(t *testing.T, title, category string) domain.Entry {
	t.Helper()
	e, err := a.entries.Add(context.Background(), catalog.EntryInput{
		Title:       title,
		Description: "about " + title,
		Category:    category,
		ImageBase64: testImage,
	})
	require.NoError(t, err)
	return e
}

func (a *testApp) addTrending(t *testing.T, title string, hidden bool) domain.TrendingItem {
	t.Helper()
	item, err := a.trending.Add(context.Background(), catalog.TrendingInput{Title: title})
	require.NoError(t, err)
	if hidden {
		item, err = a.trending.ToggleHidden(context.Background(), item.ID)
		require.NoError(t, err)
	}
	return item
}

func titles(entries []domain.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

func suggestionTitles(items []domain.Suggestion) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.Title)
	}
	return out
}

