package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ecohealth/sentinel/internal/admin"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/internal/tokens"
	"github.com/ecohealth/sentinel/internal/users"
	"github.com/ecohealth/sentinel/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminSecret = "admin-test-secret-32-bytes-xxxxxx"

func newAdminRouter(t *testing.T) (*gin.Engine, *users.Service) {
	t.Helper()
	b := repository.NewMemoryBackend()
	uSvc := users.NewService(repository.For[models.User](b, models.Users))
	r := gin.New()
	r.Use(middleware.ErrorHandler(false))
	NewAdminHandler(admin.NewService(uSvc, b), tokens.NewVerifier(adminSecret)).Register(r.Group("/api"))
	return r, uSvc
}

func tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	tok, err := tokens.GenerateAccessToken(adminSecret, u, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	r, _ := newAdminRouter(t)

	w := getPath(r, "/api/admin/users")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	user := &models.User{Base: models.Base{ID: "u1"}, Email: "u@example.com", Role: models.RoleUser}
	w = withBearer(r, http.MethodGet, "/api/admin/users", tokenFor(t, user), "")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "insufficient permissions", body(t, w)["message"])
}

func TestAdmin_ModerateUsers(t *testing.T) {
	r, uSvc := newAdminRouter(t)
	root := tokenFor(t, &models.User{Base: models.Base{ID: "root"}, Email: "root@example.com", Role: models.RoleAdmin})

	target, err := uSvc.Register(context.Background(), users.RegisterInput{Name: "Vik", Email: "vik@example.com", Password: "secret1", Domain: "environment"})
	require.NoError(t, err)

	w := withBearer(r, http.MethodGet, "/api/admin/users?search=vik&status=all", root, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body(t, w)["users"], 1)

	w = withBearer(r, http.MethodPatch, "/api/admin/users/"+target.ID+"/status", root, `{"status":"suspended"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "suspended", body(t, w)["user"].(map[string]interface{})["status"])

	w = withBearer(r, http.MethodPatch, "/api/admin/users/"+target.ID+"/status", root, `{"status":"frozen"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = withBearer(r, http.MethodDelete, "/api/admin/users/"+target.ID, root, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = withBearer(r, http.MethodDelete, "/api/admin/users/"+target.ID, root, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", body(t, w)["message"])

	w = withBearer(r, http.MethodGet, "/api/admin/logs", root, "")
	require.Equal(t, http.StatusOK, w.Code)
	logs := body(t, w)["logs"].([]interface{})
	require.Len(t, logs, 2)
	assert.Equal(t, "root@example.com", logs[0].(map[string]interface{})["user"])
}

func TestAdmin_ChatReport(t *testing.T) {
	r, _ := newAdminRouter(t)
	root := tokenFor(t, &models.User{Base: models.Base{ID: "root"}, Role: models.RoleAdmin})

	w := withBearer(r, http.MethodGet, "/api/admin/reports/chat.xlsx?domain=healthcare", root, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "chat-history-")
	// xlsx is a zip archive
	assert.Equal(t, "PK", w.Body.String()[:2])

	w = withBearer(r, http.MethodGet, "/api/admin/reports/chat.xlsx?since=yesterday", root, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
