package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/internal/sessions"
	"github.com/ecohealth/sentinel/internal/users"
	"github.com/ecohealth/sentinel/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *users.Service) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "auth-test-secret-32-bytes-xxxxxxx"
	cfg.JWT.AccessTokenTTL = time.Hour

	backend := repository.NewMemoryBackend()
	uSvc := users.NewService(repository.For[models.User](backend, models.Users))
	sSvc := sessions.NewService(sessions.NewCollectionRepository(repository.For[sessions.Session](backend, "sessions")))

	r := gin.New()
	r.Use(middleware.ErrorHandler(false))
	NewAuthHandler(cfg, uSvc, sSvc, nil).Register(r.Group("/api"))
	return r, uSvc
}

func withBearer(r *gin.Engine, method, path, token, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(r, "/api/auth/register", `{"name":"Asha","email":"asha@example.com","password":"secret1","role":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := body(t, w)
	assert.Equal(t, "User registered successfully", got["message"])
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = postJSON(r, "/api/auth/register", `{"name":"Asha","email":"asha@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", body(t, w)["message"])

	w = postJSON(r, "/api/auth/login", `{"email":"asha@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	got = body(t, w)
	assert.Equal(t, "Login successful", got["message"])
	token, _ := got["token"].(string)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, got["refreshToken"])

	w = withBearer(r, http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	user := body(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "asha@example.com", user["email"])
	// the requested role is ignored on self-registration
	assert.Equal(t, "user", user["role"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, _ := newAuthRouter(t)
	require.Equal(t, http.StatusOK, postJSON(r, "/api/auth/register", `{"name":"B","email":"b@example.com","password":"secret1"}`).Code)

	w := postJSON(r, "/api/auth/login", `{"email":"b@example.com","password":"nope"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", body(t, w)["message"])

	w = postJSON(r, "/api/auth/login", `{"email":"b@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body(t, w)["success"])
}

func TestRegister_Validation(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := postJSON(r, "/api/auth/register", `{"name":"C","email":"not-an-email","password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshAndLogout(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	sessions.SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer sessions.SetBlacklistClient(nil)

	r, _ := newAuthRouter(t)
	require.Equal(t, http.StatusOK, postJSON(r, "/api/auth/register", `{"name":"D","email":"d@example.com","password":"secret1"}`).Code)
	got := body(t, postJSON(r, "/api/auth/login", `{"email":"d@example.com","password":"secret1"}`))
	token := got["token"].(string)
	refresh := got["refreshToken"].(string)

	w := postJSON(r, "/api/auth/refresh", `{"refreshToken":"`+refresh+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body(t, w)["token"])

	w = withBearer(r, http.MethodPost, "/api/auth/logout", token, `{"refreshToken":"`+refresh+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// the access token is revoked and the refresh session is gone
	require.Equal(t, http.StatusUnauthorized, withBearer(r, http.MethodGet, "/api/auth/me", token, "").Code)
	require.Equal(t, http.StatusUnauthorized, postJSON(r, "/api/auth/refresh", `{"refreshToken":"`+refresh+`"}`).Code)
}

func TestLogin_RateLimited(t *testing.T) {
	r, _ := newAuthRouter(t)
	var last int
	for i := 0; i < 6; i++ {
		last = postJSON(r, "/api/auth/login", `{"email":"x@example.com","password":"secret1"}`).Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

func TestLogin_CORSHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"*"}))
	cfg := &config.Config{}
	cfg.JWT.Secret = "cors-test-secret-32-bytes-xxxx"
	uSvc := users.NewService(repository.For[models.User](repository.NewMemoryBackend(), models.Users))
	NewAuthHandler(cfg, uSvc, nil, nil).Register(r.Group("/api"))

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
