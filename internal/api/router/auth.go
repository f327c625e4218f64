package router

import (
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/DjordjeVuckovic/media-catalog/internal/auth"
	"github.com/DjordjeVuckovic/media-catalog/internal/validate"
	"github.com/labstack/echo/v4"
)

const msgLoginRequired = "Email and password are required."

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"notblank"`
	Password string `json:"password" form:"password" validate:"notblank"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthRouter struct {
	e         *echo.Echo
	authn     *auth.Authenticator
	tokens    *auth.Tokens
	validator *validate.Validator
}

func NewAuthRouter(e *echo.Echo, authn *auth.Authenticator, tokens *auth.Tokens, v *validate.Validator) *AuthRouter {
	return &AuthRouter{
		e:         e,
		authn:     authn,
		tokens:    tokens,
		validator: v,
	}
}

func (r *AuthRouter) Bind() {
	r.e.POST("/admin/login", r.loginHandler)
}

// loginHandler godoc
// @Summary Administrator login
// @Description Exchanges the administrator email and password for a session token
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func (r *AuthRouter) loginHandler(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if err := r.validator.Struct(req, msgLoginRequired); err != nil {
		return err
	}

	if err := r.authn.Authenticate(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}

	token, expiresAt, err := r.tokens.Issue(req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token, ExpiresAt: expiresAt})
}
