package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/DjordjeVuckovic/media-catalog/internal/auth"
	"github.com/DjordjeVuckovic/media-catalog/internal/catalog"
	"github.com/DjordjeVuckovic/media-catalog/internal/media"
	"github.com/labstack/echo/v4"
)

const imageFormField = "image"

type ImageResponse struct {
	ImageBase64 string `json:"imageBase64"`
}

// AdminRouter serves the dashboard routes. Every route requires a session.
type AdminRouter struct {
	e       *echo.Echo
	tokens  *auth.Tokens
	entries *catalog.EntryService
}

func NewAdminRouter(e *echo.Echo, tokens *auth.Tokens, entries *catalog.EntryService) *AdminRouter {
	return &AdminRouter{
		e:       e,
		tokens:  tokens,
		entries: entries,
	}
}

func (r *AdminRouter) Bind() {
	g := r.e.Group("/admin", auth.RequireSession(r.tokens))

	g.GET("/entries", r.listHandler)
	g.POST("/entries", r.addHandler)
	g.GET("/entries/:id", r.getHandler)
	g.PUT("/entries/:id", r.updateHandler)
	g.DELETE("/entries/:id", r.deleteHandler)
	g.POST("/images", r.imageHandler)
}

// listHandler godoc
// @Summary Dashboard entry listing
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param category query string false "Category filter"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} EntriesResponse
// @Failure 401 {object} map[string]string
// @Router /admin/entries [get]
func (r *AdminRouter) listHandler(c echo.Context) error {
	all, err := r.entries.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse(
		all,
		c.QueryParam("search"),
		c.QueryParam("category"),
		parsePage(c.QueryParam("page")),
	))
}

// addHandler godoc
// @Summary Add an entry
// @Description Accepts JSON, or a multipart form whose image file is encoded to a data URL
// @Tags admin
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param entry body catalog.EntryInput true "Entry"
// @Success 201 {object} domain.Entry
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/entries [post]
func (r *AdminRouter) addHandler(c echo.Context) error {
	in, err := bindEntryInput(c)
	if err != nil {
		return err
	}

	entry, err := r.entries.Add(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// getHandler godoc
// @Summary Entry for the edit form
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry id"
// @Success 200 {object} domain.Entry
// @Failure 404 {object} map[string]string
// @Router /admin/entries/{id} [get]
func (r *AdminRouter) getHandler(c echo.Context) error {
	entry, err := r.entries.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// updateHandler godoc
// @Summary Update an entry
// @Tags admin
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry id"
// @Param entry body catalog.EntryInput true "Entry"
// @Success 200 {object} domain.Entry
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/entries/{id} [put]
func (r *AdminRouter) updateHandler(c echo.Context) error {
	in, err := bindEntryInput(c)
	if err != nil {
		return err
	}

	entry, err := r.entries.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// deleteHandler godoc
// @Summary Delete an entry
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Entry id"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/entries/{id} [delete]
func (r *AdminRouter) deleteHandler(c echo.Context) error {
	if err := r.entries.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// imageHandler godoc
// @Summary Encode an image
// @Description Returns the uploaded image as a base64 data URL. Images must be under 900KB.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} ImageResponse
// @Failure 400 {object} map[string]string
// @Router /admin/images [post]
func (r *AdminRouter) imageHandler(c echo.Context) error {
	encoded, err := formImage(c)
	if err != nil {
		return err
	}
	if encoded == "" {
		return apperr.NewValidationFields("image is required", map[string]string{imageFormField: "image is required"})
	}
	return c.JSON(http.StatusOK, ImageResponse{ImageBase64: encoded})
}

// bindEntryInput reads an entry from JSON or form values. An uploaded image
// file takes precedence over an imageBase64 field.
func bindEntryInput(c echo.Context) (catalog.EntryInput, error) {
	var in catalog.EntryInput
	if err := c.Bind(&in); err != nil {
		return in, apperr.NewValidationWrap("invalid request body", err)
	}

	encoded, err := formImage(c)
	if err != nil {
		return in, err
	}
	if encoded != "" {
		in.ImageBase64 = encoded
	}
	return in, nil
}

// formImage returns "" when the request carries no image file.
func formImage(c echo.Context) (string, error) {
	fh, err := c.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", apperr.NewValidationWrap("invalid image upload", err)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	return media.EncodeDataURL(f)
}
