package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
)

func TestSkipPaths(t *testing.T) {
	var cfg middleware.RequestLoggerConfig
	SkipPaths("/health")(&cfg)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), httptest.NewRecorder())
	c.SetPath("/health")
	assert.True(t, cfg.Skipper(c))

	c.SetPath("/api/trending")
	assert.False(t, cfg.Skipper(c))
}
