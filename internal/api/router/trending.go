package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/DjordjeVuckovic/media-catalog/internal/auth"
	"github.com/DjordjeVuckovic/media-catalog/internal/catalog"
	"github.com/labstack/echo/v4"
)

type RenameRequest struct {
	Title string `json:"title"`
}

type TrendingRouter struct {
	e        *echo.Echo
	tokens   *auth.Tokens
	trending *catalog.TrendingService
}

func NewTrendingRouter(e *echo.Echo, tokens *auth.Tokens, trending *catalog.TrendingService) *TrendingRouter {
	return &TrendingRouter{
		e:        e,
		tokens:   tokens,
		trending: trending,
	}
}

func (r *TrendingRouter) Bind() {
	g := r.e.Group("/admin/trending", auth.RequireSession(r.tokens))

	g.GET("", r.listHandler)
	g.POST("", r.addHandler)
	g.PUT("/:id", r.renameHandler)
	g.POST("/:id/toggle", r.toggleHandler)
}

// listHandler godoc
// @Summary All trending items
// @Description Includes hidden items
// @Tags trending
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.TrendingItem
// @Failure 401 {object} map[string]string
// @Router /admin/trending [get]
func (r *TrendingRouter) listHandler(c echo.Context) error {
	items, err := r.trending.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// addHandler godoc
// @Summary Add a trending item
// @Description At most 6 items may exist. A blank title gets a default.
// @Tags trending
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body catalog.TrendingInput false "Item"
// @Success 201 {object} domain.TrendingItem
// @Failure 409 {object} map[string]string
// @Router /admin/trending [post]
func (r *TrendingRouter) addHandler(c echo.Context) error {
	var in catalog.TrendingInput
	if err := c.Bind(&in); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	item, err := r.trending.Add(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// renameHandler godoc
// @Summary Rename a trending item
// @Tags trending
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item id"
// @Param body body RenameRequest true "New title"
// @Success 200 {object} domain.TrendingItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/trending/{id} [put]
func (r *TrendingRouter) renameHandler(c echo.Context) error {
	var req RenameRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	item, err := r.trending.Rename(c.Request().Context(), c.Param("id"), req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// toggleHandler godoc
// @Summary Toggle visibility
// @Description Flips the hidden flag and moves the item to the top
// @Tags trending
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item id"
// @Success 200 {object} domain.TrendingItem
// @Failure 404 {object} map[string]string
// @Router /admin/trending/{id}/toggle [post]
func (r *TrendingRouter) toggleHandler(c echo.Context) error {
	item, err := r.trending.ToggleHidden(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}
