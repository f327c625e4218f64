package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

func TestAuthRouter_Login(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "valid credentials", body: `{"email":"admin@example.com","password":"s3cret"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"email":"admin@example.com","password":"nope"}`, wantStatus: http.StatusUnauthorized, wantError: "Invalid credentials"},
		{name: "unknown email", body: `{"email":"x@example.com","password":"s3cret"}`, wantStatus: http.StatusUnauthorized, wantError: "Invalid credentials"},
		{name: "missing fields", body: `{"email":""}`, wantStatus: http.StatusBadRequest, wantError: msgLoginRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/admin/login", tt.body, "")
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body["error"])
				return
			}

			var resp LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			session, err := app.tokens.Verify(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, testEmail, session.Email)
		})
	}
}

func TestAdminRouter_RequiresSession(t *testing.T) {
	app := newTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/entries"},
		{http.MethodPost, "/admin/entries"},
		{http.MethodDelete, "/admin/entries/abc"},
		{http.MethodPost, "/admin/images"},
		{http.MethodGet, "/admin/trending"},
		{http.MethodPost, "/admin/trending/abc/toggle"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, app.do(p.method, p.path, "", "").Code)
			assert.Equal(t, http.StatusUnauthorized, app.do(p.method, p.path, "", "garbage").Code)
		})
	}
}

func TestAdminRouter_EntryLifecycle(t *testing.T) {
	app := newTestApp(t)

	body := `{"title":"Heat","description":"Crime","category":"Movie","imageBase64":"` + testImage + `"}`
	rec := app.do(http.MethodPost, "/admin/entries", body, app.token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = app.do(http.MethodGet, "/admin/entries/"+created.ID, "", app.token)
	require.Equal(t, http.StatusOK, rec.Code)

	update := `{"title":"Heat 2","description":"Crime","category":"Movie","imageBase64":"` + testImage + `","link":"https://example.com/heat"}`
	rec = app.do(http.MethodPut, "/admin/entries/"+created.ID, update, app.token)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated domain.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Heat 2", updated.Title)
	assert.Equal(t, "https://example.com/heat", updated.Link)

	rec = app.do(http.MethodGet, "/admin/entries?search=heat", "", app.token)
	require.Equal(t, http.StatusOK, rec.Code)
	var list EntriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []string{"Heat 2"}, titles(list.Items))

	rec = app.do(http.MethodDelete, "/admin/entries/"+created.ID, "", app.token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(http.MethodDelete, "/admin/entries/"+created.ID, "", app.token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRouter_AddValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing title", body: `{"description":"d","category":"c","imageBase64":"` + testImage + `"}`, wantField: "title"},
		{name: "missing image", body: `{"title":"t","description":"d","category":"c"}`, wantField: "imageBase64"},
		{name: "bad link", body: `{"title":"t","description":"d","category":"c","imageBase64":"` + testImage + `","link":"nope"}`, wantField: "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/admin/entries", tt.body, app.token)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "All fields marked with * are required.", body.Error)
			assert.Contains(t, body.Fields, tt.wantField)
		})
	}
}

func multipartRequest(t *testing.T, path, token string, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile(imageFormField, "poster.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestAdminRouter_AddMultipart(t *testing.T) {
	app := newTestApp(t)

	req := multipartRequest(t, "/admin/entries", app.token, map[string]string{
		"title":       "Ronin",
		"description": "Heist",
		"category":    "Movie",
	}, pngBytes)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, strings.HasPrefix(created.ImageBase64, "data:image/png;base64,"))
}

func TestAdminRouter_Images(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name       string
		image      []byte
		wantStatus int
		wantError  string
	}{
		{name: "png", image: pngBytes, wantStatus: http.StatusOK},
		{name: "not an image", image: []byte("hello world"), wantStatus: http.StatusBadRequest, wantError: "File must be an image."},
		{name: "too large", image: append(append([]byte{}, pngBytes...), make([]byte, 900*1024)...), wantStatus: http.StatusBadRequest, wantError: "File size must be less than 900KB."},
		{name: "no file", image: nil, wantStatus: http.StatusBadRequest, wantError: "image is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := multipartRequest(t, "/admin/images", app.token, nil, tt.image)
			rec := httptest.NewRecorder()
			app.e.ServeHTTP(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body["error"])
				return
			}
			var resp ImageResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, strings.HasPrefix(resp.ImageBase64, "data:image/png;base64,"))
		})
	}
}
