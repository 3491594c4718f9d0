package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminHeader carries the shared admin secret.
const AdminHeader = "X-Admin-Password"

// Authorize reports whether credential equals the configured secret.  The
// comparison runs in constant time; an empty secret authorizes nothing.
func Authorize(secret, credential string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(credential)) == 1
}

// AdminAuth returns an Echo middleware that lets a request through only when
// its X-Admin-Password header matches secret.  Rejection happens before the
// handler runs, so a denied request never reaches storage.
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Authorize(secret, c.Request().Header.Get(AdminHeader)) {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Admin-Password")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid admin credentials"})
			}
			return next(c)
		}
	}
}
