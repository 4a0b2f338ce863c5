package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// AuthCookieName is the cookie carrying the authenticated flag.
	// Mirrors the dashboard's persisted "authenticated" entry: a boolean
	// flag, not a server-side session.
	AuthCookieName = "authenticated"

	// AuthCookieMaxAge is how long the flag persists (7 days)
	AuthCookieMaxAge = 7 * 24 * 60 * 60
)

// ErrNotAuthenticated is returned when a request reaches an admin route
// without the authenticated flag
var ErrNotAuthenticated = &AuthError{
	Code:    "UNAUTHENTICATED",
	Message: "Login required",
}

// RequireAuthenticated is a middleware that gates admin routes on the
// authenticated flag. There is no token or session validation beyond the
// flag itself.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		flag, err := c.Cookie(AuthCookieName)
		if err != nil || flag != "true" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    ErrNotAuthenticated.Code,
					"message": ErrNotAuthenticated.Message,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SetAuthenticatedFlag sets the authenticated flag cookie on the response
func SetAuthenticatedFlag(c *gin.Context) {
	c.SetCookie(AuthCookieName, "true", AuthCookieMaxAge, "/", "", false, true)
}

// ClearAuthenticatedFlag removes the authenticated flag cookie
func ClearAuthenticatedFlag(c *gin.Context) {
	c.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
}

// IsAuthenticated reports whether the request carries the authenticated flag
func IsAuthenticated(c *gin.Context) bool {
	flag, err := c.Cookie(AuthCookieName)
	return err == nil && flag == "true"
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
