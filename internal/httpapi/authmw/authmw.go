// Package authmw provides an optional bearer-token auth middleware for the
// HTTP adapter. Core scoring never sees a token; auth is purely an
// operator-facing access-control concern at the edge.
package authmw

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// BearerAuth returns echo middleware that requires a valid HS256 bearer
// token signed with secret. When secret is empty, auth is disabled and
// every request passes through — the default for local/dev use.
func BearerAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}

			const prefix = "Bearer "
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, prefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			raw := strings.TrimPrefix(header, prefix)
			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
			}

			return next(c)
		}
	}
}
