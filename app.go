package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ecohealth/sentinel/handlers"
	"github.com/ecohealth/sentinel/internal/admin"
	"github.com/ecohealth/sentinel/internal/agriculture"
	"github.com/ecohealth/sentinel/internal/chatbot"
	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/internal/emergency"
	"github.com/ecohealth/sentinel/internal/environment"
	"github.com/ecohealth/sentinel/internal/healthcare"
	"github.com/ecohealth/sentinel/internal/jitter"
	"github.com/ecohealth/sentinel/internal/llm"
	"github.com/ecohealth/sentinel/internal/mlclient"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/oidc"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/internal/sessions"
	"github.com/ecohealth/sentinel/internal/sources"
	"github.com/ecohealth/sentinel/internal/tokens"
	"github.com/ecohealth/sentinel/internal/users"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/ecohealth/sentinel/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// dependencies are the connections main establishes before routing.
// Everything but cfg and backend may be nil.
type dependencies struct {
	cfg     *config.Config
	backend *repository.Backend
	redis   *redis.Client
	images  agriculture.ImageStore
	llm     chatbot.Completer
}

type application struct {
	engine     *gin.Engine
	healthcare *healthcare.Service
}

func build(ctx context.Context, d dependencies) *application {
	cfg := d.cfg
	rnd := jitter.New()

	completer := d.llm
	if completer == nil {
		completer = llm.NewClients(ctx, cfg.LLM)
	}
	catalog := sources.NewCatalog(cfg.Sources, d.redis)
	router := chatbot.NewRouter(
		chatbot.NewAgricultureBot(completer, catalog, cfg.Sources.GatherTimeout),
		chatbot.NewEnvironmentBot(completer, catalog, cfg.Sources.GatherTimeout),
		chatbot.NewHealthcareBot(completer),
	)
	chatSvc := chatbot.NewService(router, repository.For[models.ChatMessage](d.backend, models.ChatMessages))

	agriSvc := agriculture.NewService(d.backend, rnd)
	healthSvc := healthcare.NewService(d.backend, rnd)
	if ml := mlclient.New(cfg.ML); ml != nil {
		agriSvc.WithClassifier(ml)
		healthSvc.WithScorer(ml)
	}
	if d.images != nil {
		agriSvc.WithImageStore(d.images)
	}

	usersSvc := users.NewService(repository.For[models.User](d.backend, models.Users))
	var sessionRepo sessions.Repository = sessions.NewCollectionRepository(repository.For[sessions.Session](d.backend, "sessions"))
	if d.redis != nil {
		sessionRepo = sessions.NewRedisRepository(d.redis, "session:")
	}
	sessionsSvc := sessions.NewService(sessionRepo)

	verifier := middleware.ChainVerifier{tokens.NewVerifier(cfg.JWT.Secret)}
	if cfg.Keycloak.URL != "" && cfg.Keycloak.ClientID != "" {
		if v, err := oidc.NewVerifier(ctx, cfg.Keycloak); err != nil {
			logger.Warnf("keycloak tokens will not be accepted: %v", err)
		} else {
			verifier = append(verifier, v)
		}
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(cfg.IsDevelopment()), middleware.CORS(cfg.Server.CORSOrigins), middleware.ErrorHandler(cfg.IsDevelopment()))
	r.NoRoute(middleware.NotFound)

	health := handlers.NewHealthHandler(d.backend, cfg.Server.Environment)
	if d.redis != nil {
		rdb := d.redis
		health.WithCheck("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	health.Register(r)
	handlers.RegisterDocs(r, fmt.Sprintf("http://localhost:%s/api", cfg.Server.Port))
	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && d.redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			api.Use(middleware.RedisRateLimitMiddleware(d.redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			api.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.NewChatbotHandler(chatSvc, cfg.RateLimit.ChatPerMinute).Register(api)
	handlers.NewAgricultureHandler(agriSvc).Register(api)
	handlers.NewEnvironmentHandler(environment.NewService(d.backend)).Register(api)
	handlers.NewHealthcareHandler(healthSvc).Register(api)
	handlers.NewEmergencyHandler(emergency.NewService(d.backend)).Register(api)
	handlers.NewAdminHandler(admin.NewService(usersSvc, d.backend), verifier).Register(api)
	handlers.NewAuthHandler(cfg, usersSvc, sessionsSvc, verifier).Register(api)

	return &application{engine: r, healthcare: healthSvc}
}
