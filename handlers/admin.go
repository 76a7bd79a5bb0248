package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ecohealth/sentinel/internal/admin"
	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/users"
	"github.com/ecohealth/sentinel/pkg/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	svc      *admin.Service
	verifier middleware.Verifier
}

func NewAdminHandler(svc *admin.Service, v middleware.Verifier) *AdminHandler {
	return &AdminHandler{svc: svc, verifier: v}
}

// Register routes under /admin. Every route needs an admin bearer token.
func (h *AdminHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/admin", middleware.AuthMiddleware(h.verifier), middleware.RequireRole(models.RoleAdmin))
	g.GET("/users", h.Users)
	g.PATCH("/users/:id/status", h.SetStatus)
	g.DELETE("/users/:id", h.DeleteUser)
	g.GET("/logs", h.Logs)
	g.GET("/reports/chat.xlsx", h.ChatReport)
}

func actor(c *gin.Context) admin.Actor {
	name := middleware.ClaimString(c, "email")
	if name == "" {
		name = "Admin"
	}
	return admin.Actor{Name: name, IP: c.ClientIP()}
}

func (h *AdminHandler) Users(c *gin.Context) {
	list, err := h.svc.Users(c.Request.Context(), users.ListFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": list})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) SetStatus(c *gin.Context) {
	var req statusRequest
	if !bind(c, &req) {
		return
	}
	u, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status, actor(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}

func (h *AdminHandler) Logs(c *gin.Context) {
	logs, err := h.svc.Logs(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs})
}

// ChatReport streams an xlsx export; ?domain= and ?since=YYYY-MM-DD narrow it.
func (h *AdminHandler) ChatReport(c *gin.Context) {
	f := admin.ReportFilter{Domain: c.Query("domain")}
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			_ = c.Error(apperr.BadRequest("since must be YYYY-MM-DD"))
			return
		}
		f.Since = t
	}
	data, err := h.svc.ChatReport(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		return
	}
	name := fmt.Sprintf("chat-history-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
