package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/storefront/internal/session"
)

const userIDKey = "userID"

// RequireLogin rejects requests without a valid session cookie and stores
// the authenticated user id in the echo context for handlers downstream.
func RequireLogin(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			userID, err := m.Parse(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the id stored by RequireLogin; empty when the route was
// not behind the middleware.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
