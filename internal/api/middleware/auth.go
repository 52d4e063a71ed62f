package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUsername = "username"
	CtxEmail    = "email"
	CtxRoles    = "roles"
)

// Auth validates the session token and injects its claims into context. The
// role claim is a semicolon-joined list and is split before injection.
func Auth(signingKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(signingKey), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUsername, claims["name"])
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxRoles, splitRoles(claims["role"]))

			// Stash the raw token so backend relays can forward it.
			ctx := context.WithValue(c.Request().Context(), tokenContextKey{}, parts[1])
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

type tokenContextKey struct{}

// TokenFromContext returns the raw bearer token stashed by Auth, or the
// empty string outside an authenticated request.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

// splitRoles turns the ";"-joined role claim into a slice. An absent or
// empty claim yields no roles.
func splitRoles(claim any) []string {
	joined, _ := claim.(string)
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ";")
}
