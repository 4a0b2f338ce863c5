package testutil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flusk-cnc/flusk-admin-api/middleware"
)

// AuthenticatedCookie returns the flag cookie an admin request carries after
// logging in. The dashboard keeps the same boolean flag client-side; there is
// no token to forge or sign.
func AuthenticatedCookie() *http.Cookie {
	return &http.Cookie{
		Name:  middleware.AuthCookieName,
		Value: "true",
		Path:  "/",
	}
}

// AuthenticateRequest attaches the authenticated flag to a request so it
// passes the admin gate
func AuthenticateRequest(req *http.Request) {
	req.AddCookie(AuthenticatedCookie())
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
