package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/internal/gateway"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/ecohealth/sentinel/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Configure(cfg.Log.Format, "ecohealth-gateway")
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	gw, err := gateway.New(cfg.Gateway)
	if err != nil {
		logger.Fatalf("gateway config: %v", err)
	}
	origins := cfg.Server.CORSOrigins
	if cfg.Gateway.FrontendURL != "" {
		origins = append(origins, cfg.Gateway.FrontendURL)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Gateway.Port,
		Handler:           gw.Handler(origins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("gateway listening on %s (api=%s fastapi=%s frontend=%s)",
			srv.Addr, cfg.Gateway.APIURL, cfg.Gateway.FastAPIURL, cfg.Gateway.FrontendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("gateway failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	logger.Info("SIGTERM received, closing gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
	_ = logger.Sync()
}
