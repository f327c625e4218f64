package auth

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/labstack/echo/v4"
)

const sessionContextKey = "catalogSession"

// RequireSession rejects requests without a valid bearer token.
func RequireSession(tokens *Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

			session, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, ErrMissingToken) {
					return apperr.NewUnauthorized("missing session token", err)
				}
				slog.Warn("session token rejected", "error", err, "uri", c.Request().RequestURI)
				return apperr.NewUnauthorized("invalid session token", err)
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

func SessionFrom(c echo.Context) (*Session, bool) {
	s, ok := c.Get(sessionContextKey).(*Session)
	return s, ok
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
