// Package gateway is the single public entry point in front of the REST API,
// the FastAPI model service and the web frontend.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/ecohealth/sentinel/pkg/metrics"
	"github.com/ecohealth/sentinel/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	mlPrefix      = "/api/ml"
	predictPrefix = "/api/predict"
)

type upstream struct {
	name  string
	url   *url.URL
	proxy *httputil.ReverseProxy
}

type Gateway struct {
	api      *upstream
	fastapi  *upstream
	frontend *upstream
	probe    *resty.Client
	started  time.Time
	now      func() time.Time
}

// New parses the upstream URLs. The frontend is optional.
func New(cfg config.GatewayConfig) (*Gateway, error) {
	g := &Gateway{started: time.Now(), now: time.Now}
	var err error
	if g.api, err = newUpstream("api", cfg.APIURL); err != nil {
		return nil, err
	}
	if g.fastapi, err = newUpstream("fastapi", cfg.FastAPIURL); err != nil {
		return nil, err
	}
	if cfg.FrontendURL != "" {
		if g.frontend, err = newUpstream("frontend", cfg.FrontendURL); err != nil {
			return nil, err
		}
	}
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	g.probe = resty.New().SetTimeout(timeout)
	return g, nil
}

func newUpstream(name, raw string) (*upstream, error) {
	if raw == "" {
		return nil, fmt.Errorf("%s upstream url is empty", name)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid %s upstream url %q", name, raw)
	}
	up := &upstream{name: name, url: u}
	up.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(u)
			pr.SetXForwarded()
			pr.Out.Host = u.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			metrics.ProxyErrors.WithLabelValues(name).Inc()
			logger.Errorf("proxy %s %s -> %s: %v", r.Method, r.URL.Path, u, err)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":     "Service Unavailable",
				"message":   "Cannot reach " + u.String(),
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		},
	}
	return up, nil
}

// Handler builds the gateway's router. Anything that is not a gateway
// endpoint is forwarded upstream.
func (g *Gateway) Handler(corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(false), middleware.CORS(corsOrigins))
	r.GET("/health", g.Health)
	r.GET("/health/services", g.Services)
	r.GET("/info", g.Info)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(g.forward)
	return r
}

// route picks the upstream for path and the path it should see there.
func (g *Gateway) route(path string) (*upstream, string) {
	switch {
	case hasSegmentPrefix(path, mlPrefix):
		rest := strings.TrimPrefix(path, mlPrefix)
		if rest == "" {
			rest = "/"
		}
		return g.fastapi, rest
	case hasSegmentPrefix(path, predictPrefix):
		return g.fastapi, "/predict" + strings.TrimPrefix(path, predictPrefix)
	case hasSegmentPrefix(path, "/api"):
		return g.api, path
	}
	return g.frontend, path
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (g *Gateway) forward(c *gin.Context) {
	up, path := g.route(c.Request.URL.Path)
	if up == nil {
		middleware.NotFound(c)
		return
	}
	req := c.Request.Clone(c.Request.Context())
	req.URL.Path = path
	req.URL.RawPath = ""
	logger.Debugf("proxy %s %s -> %s%s", req.Method, c.Request.URL.Path, up.url, path)
	up.proxy.ServeHTTP(c.Writer, req)
}

func (g *Gateway) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "API Gateway",
		"timestamp": g.now().UTC().Format(time.RFC3339),
		"uptime":    g.now().Sub(g.started).Seconds(),
	})
}

type serviceStatus struct {
	Status string `json:"status"`
	URL    string `json:"url"`
	Error  string `json:"error,omitempty"`
}

// Services probes every upstream's /health concurrently. It always answers
// 200; an unreachable upstream is reported, not propagated.
func (g *Gateway) Services(c *gin.Context) {
	ups := []*upstream{g.api, g.fastapi}
	if g.frontend != nil {
		ups = append(ups, g.frontend)
	}

	var mu sync.Mutex
	statuses := make(map[string]serviceStatus, len(ups))
	eg, ctx := errgroup.WithContext(c.Request.Context())
	for _, up := range ups {
		eg.Go(func() error {
			st := g.check(ctx, up)
			mu.Lock()
			statuses[up.name] = st
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	c.JSON(http.StatusOK, gin.H{
		"gateway":   "healthy",
		"services":  statuses,
		"timestamp": g.now().UTC().Format(time.RFC3339),
	})
}

func (g *Gateway) check(ctx context.Context, up *upstream) serviceStatus {
	st := serviceStatus{URL: up.url.String()}
	resp, err := g.probe.R().SetContext(ctx).Get(strings.TrimRight(up.url.String(), "/") + "/health")
	switch {
	case err != nil:
		st.Status, st.Error = "unhealthy", err.Error()
	case resp.IsError():
		st.Status, st.Error = "unhealthy", resp.Status()
	default:
		st.Status = "healthy"
	}
	return st
}

func (g *Gateway) Info(c *gin.Context) {
	body := gin.H{
		"name":    "EcoHealth-Sentinel Gateway",
		"version": "1.0.0",
		"backends": gin.H{
			"fastapi": g.fastapi.url.String(),
			"api":     g.api.url.String(),
		},
	}
	if g.frontend != nil {
		body["frontend"] = g.frontend.url.String()
	}
	c.JSON(http.StatusOK, body)
}
