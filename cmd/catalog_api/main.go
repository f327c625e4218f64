// Package main Media Catalog API
// @title Media Catalog API
// @version 1.0
// @description Live title search, filtered browsing and administration for a media catalog
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	_ "github.com/DjordjeVuckovic/media-catalog/docs"
	"github.com/DjordjeVuckovic/media-catalog/internal/api/router"
	"github.com/DjordjeVuckovic/media-catalog/internal/api/server"
	"github.com/DjordjeVuckovic/media-catalog/internal/auth"
	"github.com/DjordjeVuckovic/media-catalog/internal/catalog"
	mw "github.com/DjordjeVuckovic/media-catalog/internal/middleware"
	"github.com/DjordjeVuckovic/media-catalog/internal/search"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
	"github.com/DjordjeVuckovic/media-catalog/internal/storage/factory"
	"github.com/DjordjeVuckovic/media-catalog/internal/validate"
	pkgserver "github.com/DjordjeVuckovic/media-catalog/pkg/server"
	"github.com/labstack/echo/v4"
)

const (
	storeInitTimeout = 30 * time.Second
	storePingTimeout = 2 * time.Second
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	// The store is opened before the server so its pinger backs /health.
	initCtx, cancelInit := context.WithTimeout(context.Background(), storeInitTimeout)
	ds, closeStore, err := factory.NewDataSource(initCtx, cfg.StorageConfig)
	cancelInit()
	if err != nil {
		slog.Error("Failed to create data source", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var heathChecker pkgserver.HealthChecker = pkgserver.NewOkHealthChecker()
	if p, ok := ds.(storage.Pinger); ok {
		heathChecker = pkgserver.NewPingHealthChecker(string(cfg.StorageConfig.Type), p, storePingTimeout)
	}

	s := server.New(sCfg, heathChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Media Catalog API is running")
	})

	v := validate.New()
	s.Echo.Validator = validate.Echo{V: v, Message: catalog.MsgRequiredFields}

	entries := catalog.NewEntryService(ds, v)
	trending := catalog.NewTrendingService(ds)
	fetcher := search.NewFetcher(ds)
	provider := search.NewTrendingProvider(ds)

	tokens := auth.NewTokens(cfg.AuthConfig.Secret, cfg.AuthConfig.Issuer, cfg.AuthConfig.TokenTTL)
	authn := auth.NewAuthenticator(cfg.AuthConfig.AdminEmail, cfg.AuthConfig.AdminPasswordHash)

	limiter := mw.NewRateLimiter(sCfg.RateLimit.RPS, sCfg.RateLimit.Burst)
	go limiter.Run(s.Context())

	router.NewSearchRouter(s.Echo, fetcher, provider, entries, router.WithRateLimiter(limiter)).Bind()
	router.NewLiveRouter(s.Echo, fetcher, provider, entries,
		router.WithAllowedOrigins(sCfg.CorsOrigins),
		router.WithSearchOptions(search.WithConfig(cfg.SearchConfig)),
	).Bind()
	router.NewAuthRouter(s.Echo, authn, tokens, v).Bind()
	router.NewAdminRouter(s.Echo, tokens, entries).Bind()
	router.NewTrendingRouter(s.Echo, tokens, trending).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
