package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livraria-app/livraria/internal/config"
)

func loginBody(login, password string) io.Reader {
	body, _ := json.Marshal(gin.H{"login": login, "password": password})
	return bytes.NewBuffer(body)
}

func setupAuthRouter(t *testing.T) (*gin.Engine, *Service, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service, db, cleanup := setupTestService(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sessions, err := NewSessionManager(sqlDB, config.Auth{SessionLifetime: 24 * time.Hour})
	require.NoError(t, err)

	router := gin.New()
	router.Use(sessions.SessionLoadSave())
	NewController(service, sessions).RegisterRoutes(router)

	return router, service, cleanup
}

func postJSON(router *gin.Engine, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestController_Login(t *testing.T) {
	t.Run("valid credentials set a session cookie", func(t *testing.T) {
		router, service, cleanup := setupAuthRouter(t)
		defer cleanup()

		_, err := service.CreateUser("alice", "alice@example.com", "password123", "", 0)
		require.NoError(t, err)

		w := postJSON(router, "/auth/login", loginBody("alice", "password123"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Result().Cookies())

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "alice", response["login"])
	})

	t.Run("unknown login and wrong password are indistinguishable", func(t *testing.T) {
		router, service, cleanup := setupAuthRouter(t)
		defer cleanup()

		_, err := service.CreateUser("alice", "", "password123", "", 0)
		require.NoError(t, err)

		unknown := postJSON(router, "/auth/login", loginBody("nobody", "password123"))
		wrong := postJSON(router, "/auth/login", loginBody("alice", "wrong-password"))

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		router, _, cleanup := setupAuthRouter(t)
		defer cleanup()

		w := postJSON(router, "/auth/login", bytes.NewBufferString(`{"login":"alice"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestController_Logout(t *testing.T) {
	router, service, cleanup := setupAuthRouter(t)
	defer cleanup()

	_, err := service.CreateUser("alice", "", "password123", "", 0)
	require.NoError(t, err)

	w := postJSON(router, "/auth/login", loginBody("alice", "password123"))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	logout := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/logout", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(logout, req)

	assert.Equal(t, http.StatusOK, logout.Code)
	assert.Contains(t, logout.Body.String(), "logged out")
}
