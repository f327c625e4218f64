package router

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DjordjeVuckovic/media-catalog/internal/catalog"
	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	mw "github.com/DjordjeVuckovic/media-catalog/internal/middleware"
	"github.com/DjordjeVuckovic/media-catalog/internal/search"
	"github.com/DjordjeVuckovic/media-catalog/pkg/pagination"
	"github.com/labstack/echo/v4"
)

// EntriesResponse is one page of filtered entries.
type EntriesResponse struct {
	pagination.OffsetResult[domain.Entry]
	Query    string `json:"query"`
	Category string `json:"category"`
}

type SuggestionsResponse struct {
	Query       string              `json:"query"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

type SearchRouterOption func(*SearchRouter)

// WithRateLimiter throttles every /api route per client IP.
func WithRateLimiter(rl *mw.RateLimiter) SearchRouterOption {
	return func(r *SearchRouter) {
		r.limiter = rl
	}
}

type SearchRouter struct {
	e        *echo.Echo
	fetcher  search.SuggestionFetcher
	trending search.TrendingSource
	entries  *catalog.EntryService
	limiter  *mw.RateLimiter
}

func NewSearchRouter(
	e *echo.Echo,
	fetcher search.SuggestionFetcher,
	trending search.TrendingSource,
	entries *catalog.EntryService,
	opts ...SearchRouterOption,
) *SearchRouter {
	r := &SearchRouter{
		e:        e,
		fetcher:  fetcher,
		trending: trending,
		entries:  entries,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *SearchRouter) Bind() {
	g := r.e.Group("/api")
	if r.limiter != nil {
		g.Use(r.limiter.Middleware())
	}

	g.GET("/suggestions", r.suggestionsHandler)
	g.GET("/trending", r.trendingHandler)
	g.GET("/entries", r.entriesHandler)
	g.GET("/entries/:id", r.entryHandler)
}

// suggestionsHandler godoc
// @Summary Suggestions for a partial query
// @Description Returns entries whose lowercase title starts with the lowercase query. An empty query returns no suggestions.
// @Tags search
// @Produce json
// @Param q query string false "Partial query text"
// @Success 200 {object} SuggestionsResponse
// @Failure 429 {object} map[string]string
// @Router /api/suggestions [get]
func (r *SearchRouter) suggestionsHandler(c echo.Context) error {
	q := c.QueryParam("q")

	suggestions, err := r.fetcher.Fetch(c.Request().Context(), q)
	if err != nil {
		slog.Warn("suggestion fetch failed", "query", q, "error", err)
		suggestions = nil
	}
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}

	return c.JSON(http.StatusOK, SuggestionsResponse{Query: q, Suggestions: suggestions})
}

// trendingHandler godoc
// @Summary Trending suggestions
// @Description Visible trending items, newest first
// @Tags search
// @Produce json
// @Success 200 {array} domain.Suggestion
// @Router /api/trending [get]
func (r *SearchRouter) trendingHandler(c echo.Context) error {
	items, err := r.trending.Trending(c.Request().Context())
	if err != nil {
		slog.Warn("trending fetch failed", "error", err)
		items = nil
	}
	return c.JSON(http.StatusOK, domain.VisibleSuggestions(items))
}

// entriesHandler godoc
// @Summary List entries
// @Description Filters entries by committed search term and category and returns one page. latest=true returns the newest entries unfiltered.
// @Tags search
// @Produce json
// @Param search query string false "Committed search term"
// @Param category query string false "Category filter"
// @Param page query int false "Page number" default(1)
// @Param latest query bool false "Return only the latest entries"
// @Success 200 {object} EntriesResponse
// @Router /api/entries [get]
func (r *SearchRouter) entriesHandler(c echo.Context) error {
	ctx := c.Request().Context()

	if latest, _ := strconv.ParseBool(c.QueryParam("latest")); latest {
		items, err := r.entries.Latest(ctx)
		if err != nil {
			slog.Warn("latest entries fetch failed", "error", err)
			items = nil
		}
		return c.JSON(http.StatusOK, EntriesResponse{
			OffsetResult: pagination.NewOffsetResult(items, len(items), 1, max(len(items), 1)),
		})
	}

	all, err := r.entries.List(ctx)
	if err != nil {
		slog.Warn("entries fetch failed", "error", err)
		all = nil
	}

	return c.JSON(http.StatusOK, pageResponse(
		all,
		c.QueryParam("search"),
		c.QueryParam("category"),
		parsePage(c.QueryParam("page")),
	))
}

// entryHandler godoc
// @Summary Get an entry
// @Tags search
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} domain.Entry
// @Failure 404 {object} map[string]string
// @Router /api/entries/{id} [get]
func (r *SearchRouter) entryHandler(c echo.Context) error {
	entry, err := r.entries.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

func pageResponse(all []domain.Entry, query, category string, page int) EntriesResponse {
	p := search.NewPager(search.DefaultPageSize)
	p.SetResults(all)
	p.SetQuery(query)
	p.SetCategory(category)
	return pagerResponse(p, page)
}

// pagerResponse moves p to page and describes it.
func pagerResponse(p *search.Pager, page int) EntriesResponse {
	items := p.Page(page)
	return EntriesResponse{
		OffsetResult: pagination.NewOffsetResult(items, p.Len(), p.Current(), p.Size()),
		Query:        p.Query(),
		Category:     p.Category(),
	}
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
