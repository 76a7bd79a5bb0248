package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Database is the part of the storage backend the health probes need.
type Database interface {
	Kind() string
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db          Database
	environment string
	started     time.Time
	checks      map[string]func(context.Context) error
	now         func() time.Time
}

func NewHealthHandler(db Database, environment string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		environment: environment,
		started:     time.Now(),
		checks:      map[string]func(context.Context) error{},
		now:         time.Now,
	}
}

// WithCheck adds a dependency that /ready must reach.
func (h *HealthHandler) WithCheck(name string, fn func(context.Context) error) *HealthHandler {
	h.checks[name] = fn
	return h
}

func (h *HealthHandler) Register(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	dbStatus := "connected"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "disconnected"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	up := h.now().Sub(h.started)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"uptime": gin.H{
			"seconds":   int64(up.Seconds()),
			"formatted": formatUptime(up),
		},
		"database": gin.H{"status": dbStatus, "name": h.db.Name(), "kind": h.db.Kind()},
		"memory": gin.H{
			"alloc":     megabytes(mem.Alloc),
			"sys":       megabytes(mem.Sys),
			"heapInuse": megabytes(mem.HeapInuse),
		},
		"environment": h.environment,
		"goVersion":   runtime.Version(),
	})
}

// Ready returns 503 until the database and every registered check respond.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := map[string]bool{"database": h.db.Ping(ctx) == nil}
	for name, check := range h.checks {
		deps[name] = check(ctx) == nil
	}
	status, code := "ready", http.StatusOK
	for _, up := range deps {
		if !up {
			status, code = "not_ready", http.StatusServiceUnavailable
			break
		}
	}
	c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": formatUptime(h.now().Sub(h.started))})
}

// formatUptime renders d as "1d 2h 3m 4s", leaving out zero parts.
func formatUptime(d time.Duration) string {
	secs := int64(d.Seconds())
	units := []struct {
		n      int64
		suffix string
	}{
		{secs / 86400, "d"},
		{secs % 86400 / 3600, "h"},
		{secs % 3600 / 60, "m"},
		{secs % 60, "s"},
	}
	var parts []string
	for _, u := range units {
		if u.n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", u.n, u.suffix))
		}
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

func megabytes(b uint64) string {
	return fmt.Sprintf("%.2f MB", float64(b)/1024/1024)
}
