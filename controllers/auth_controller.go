package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/flusk-cnc/flusk-admin-api/config"
	"github.com/flusk-cnc/flusk-admin-api/middleware"
	"github.com/gin-gonic/gin"
)

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/login - checks the staff credentials and sets
// the authenticated flag. Route access is controlled by that flag alone;
// there is no server-side session.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	cfg := config.GetConfig()
	if cfg.AdminPassword == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LOGIN_DISABLED",
				"message": "Admin credentials are not configured",
			},
		})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid username or password",
			},
		})
		return
	}

	middleware.SetAuthenticatedFlag(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"authenticated": true,
		},
	})
}

// Logout handles POST /api/v1/logout - clears the authenticated flag
func Logout(c *gin.Context) {
	middleware.ClearAuthenticatedFlag(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"authenticated": false,
		},
	})
}
