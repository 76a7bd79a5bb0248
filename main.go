package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/internal/database"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/internal/sessions"
	"github.com/ecohealth/sentinel/internal/storage"
	"github.com/ecohealth/sentinel/internal/telemetry"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/ecohealth/sentinel/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Configure(cfg.Log.Format, "ecohealth-api")
	logger.Infof("config loaded: mongo=%v redis=%v gemini=%v openai=%v ml=%v minio=%v mqtt=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.LLM.GeminiAPIKey != "", cfg.LLM.OpenAIAPIKey != "",
		cfg.ML.BaseURL != "", cfg.MinIO.Endpoint != "", cfg.MQTT.Broker != "")
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := dependencies{cfg: cfg}

	if cfg.Redis.Host != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = rdb.Close()
		} else {
			deps.redis = rdb
			sessions.SetBlacklistClient(rdb)
			defer rdb.Close()
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	deps.backend = repository.NewMemoryBackend()
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Warnf("falling back to in-memory storage: %v", err)
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			deps.backend = repository.NewMongoBackend(client.Database(cfg.MongoDB.Database))
			logger.Infof("connected to MongoDB database %s", cfg.MongoDB.Database)
		}
	}

	if cfg.MinIO.Endpoint != "" {
		st, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("image storage disabled: %v", err)
		} else {
			deps.images = st
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	app := build(ctx, deps)

	if cfg.MQTT.Broker != "" {
		sub, err := telemetry.Subscribe(cfg.MQTT, telemetry.NewHandler(app.healthcare))
		if err != nil {
			logger.Warnf("vital sign telemetry disabled: %v", err)
		} else {
			defer sub.Close()
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      app.engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("EcoHealth Sentinel API listening on %s (%s)", srv.Addr, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
	_ = logger.Sync()
}
