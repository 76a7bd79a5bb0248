package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/sessions"
	"github.com/ecohealth/sentinel/internal/tokens"
	"github.com/ecohealth/sentinel/internal/users"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/ecohealth/sentinel/pkg/middleware"
	"github.com/gin-gonic/gin"
)

const refreshTTL = 7 * 24 * time.Hour

// LoginRequest is the password login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	verifier    middleware.Verifier
}

// NewAuthHandler wires the auth routes. A nil verifier accepts the tokens this
// handler issues.
func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service, v middleware.Verifier) *AuthHandler {
	if v == nil {
		v = tokens.NewVerifier(cfg.JWT.Secret)
	}
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, verifier: v}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	limit := middleware.AuthRateLimitMiddleware(5, 15*time.Minute)
	a.POST("/register", limit, h.RegisterUser)
	a.POST("/login", limit, h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
	a.GET("/me", middleware.AuthMiddleware(h.verifier), h.Me)
}

func (h *AuthHandler) accessTTL() time.Duration {
	if h.cfg.JWT.AccessTokenTTL > 0 {
		return h.cfg.JWT.AccessTokenTTL
	}
	return 24 * time.Hour
}

// RegisterUser creates a password account.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var in users.RegisterInput
	if !bind(c, &in) {
		return
	}
	// admins are provisioned out of band
	in.Role = models.RoleUser
	u, err := h.usersSvc.Register(c.Request.Context(), in)
	if errors.Is(err, users.ErrUserExists) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    gin.H{"id": u.ID, "name": u.Name, "email": u.Email},
	})
}

// Login verifies credentials and returns an access token plus a refresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, users.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	case errors.Is(err, users.ErrSuspended):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
		return
	case err != nil:
		_ = c.Error(err)
		return
	}

	access, err := tokens.GenerateAccessToken(h.cfg.JWT.Secret, u, h.accessTTL())
	if err != nil {
		_ = c.Error(apperr.Wrap(http.StatusInternalServerError, "failed to create access token", err))
		return
	}
	resp := gin.H{
		"success":   true,
		"message":   "Login successful",
		"token":     access,
		"expiresIn": int(h.accessTTL().Seconds()),
		"user":      u,
	}
	if h.sessionsSvc != nil {
		rft, err := h.sessionsSvc.CreateSession(c.Request.Context(), u.ID, u.Role, refreshTTL)
		if err != nil {
			logger.Warnf("refresh session not created for %s: %v", u.ID, err)
		} else {
			resp["refreshToken"] = rft
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if !bind(c, &req) {
		return
	}
	if h.sessionsSvc == nil {
		_ = c.Error(apperr.New(http.StatusServiceUnavailable, "sessions unavailable"))
		return
	}
	sess, err := h.sessionsSvc.ValidateRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid refresh token"})
		return
	}
	u, err := h.usersSvc.Get(c.Request.Context(), sess.UserID)
	if err != nil || u.Status == models.UserSuspended {
		_ = h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid refresh token"})
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg.JWT.Secret, u, h.accessTTL())
	if err != nil {
		_ = c.Error(apperr.Wrap(http.StatusInternalServerError, "failed to create access token", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": access, "expiresIn": int(h.accessTTL().Seconds())})
}

// Logout blacklists the presented access token until it expires and drops
// the refresh session when one is supplied.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = c.ShouldBindJSON(&req)

	if at, ok := middleware.BearerToken(c); ok {
		if exp, err := tokens.ExpiresAt(h.cfg.JWT.Secret, at); err == nil {
			if err := sessions.BlacklistAccessToken(c.Request.Context(), at, time.Until(exp)); err != nil {
				_ = c.Error(apperr.Wrap(http.StatusInternalServerError, "failed to blacklist access token", err))
				return
			}
		}
	}
	if req.RefreshToken != "" && h.sessionsSvc != nil {
		if err := h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
			_ = c.Error(apperr.Wrap(http.StatusInternalServerError, "failed to remove session", err))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// Me returns the account behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	sub := middleware.ClaimString(c, "sub")
	u, err := h.usersSvc.Get(c.Request.Context(), sub)
	if err != nil {
		claims, _ := c.Get("claims")
		c.JSON(http.StatusOK, gin.H{"success": true, "claims": claims})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}
