package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flusk-cnc/flusk-admin-api/config"
	"github.com/flusk-cnc/flusk-admin-api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/login", Login)
	router.POST("/api/v1/logout", Logout)
	return router
}

func TestLogin(t *testing.T) {
	config.SetConfig(&config.Config{
		AdminUsername: "admin",
		AdminPassword: "s3cret",
	})

	router := setupAuthRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
		expectCookie   bool
	}{
		{
			name:           "valid credentials set the flag",
			body:           `{"username":"admin","password":"s3cret"}`,
			expectedStatus: http.StatusOK,
			expectCookie:   true,
		},
		{
			name:           "wrong password",
			body:           `{"username":"admin","password":"nope"}`,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIALS",
		},
		{
			name:           "wrong username",
			body:           `{"username":"root","password":"s3cret"}`,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIALS",
		},
		{
			name:           "missing fields",
			body:           `{"username":"admin"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/v1/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				errObj := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errObj["code"])
			}

			var flagCookie *http.Cookie
			for _, cookie := range w.Result().Cookies() {
				if cookie.Name == middleware.AuthCookieName {
					flagCookie = cookie
				}
			}
			if tt.expectCookie {
				assert.NotNil(t, flagCookie, "authenticated flag cookie should be set")
				assert.Equal(t, "true", flagCookie.Value)
			} else {
				assert.Nil(t, flagCookie, "failed login must not set the flag")
			}
		})
	}
}

func TestLoginDisabledWithoutPassword(t *testing.T) {
	config.SetConfig(&config.Config{AdminUsername: "admin"})

	router := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/login", strings.NewReader(`{"username":"admin","password":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// An empty password is a validation error before anything else
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/v1/login", strings.NewReader(`{"username":"admin","password":"anything"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(t, "LOGIN_DISABLED", errObj["code"])
}

func TestLogoutClearsFlag(t *testing.T) {
	router := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "true"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var flagCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AuthCookieName {
			flagCookie = cookie
		}
	}
	assert.NotNil(t, flagCookie)
	assert.Empty(t, flagCookie.Value)
	assert.Negative(t, flagCookie.MaxAge, "cookie should be expired")
}
