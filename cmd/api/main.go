package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"academy-enrollment-api/internal/cache"
	"academy-enrollment-api/internal/config"
	"academy-enrollment-api/internal/database"
	"academy-enrollment-api/internal/events"
	"academy-enrollment-api/internal/features"
	"academy-enrollment-api/internal/handler"
	"academy-enrollment-api/internal/middleware"
	"academy-enrollment-api/internal/service"
	"academy-enrollment-api/internal/tracing"
)

func main() {
	configFile := flag.String("config", "", "Path to JSON config file")
	port := flag.String("port", "", "Server port (overrides config)")
	dbPath := flag.String("db", "", "Database file path (overrides config)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Initialize tracing
	if _, err := tracing.InitTracing(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: "academy-enrollment-api",
		Environment: cfg.Tracing.Environment,
	}); err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx); err != nil {
			logger.Warn("failed to shut down tracing", zap.Error(err))
		}
	}()

	// Initialize database
	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize cache backend
	var c cache.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		c = redisCache
		logger.Info("using redis cache", zap.String("addr", cfg.Redis.Addr))
	} else {
		c = cache.NewInMemoryCache()
		logger.Info("using in-memory cache")
	}

	flags := features.Defaults()
	flags.Set(features.FeatureCacheEnabled, cfg.Features.CacheEnabled)
	flags.Set(features.FeatureEventHooksEnabled, cfg.Features.EventHooks)
	flags.Set(features.FeatureGateBonusOnCompletion, cfg.Features.GateBonusOnCompletion)

	eventBus := events.NewManager(flags.IsEnabled(features.FeatureEventHooksEnabled))
	defer eventBus.Shutdown()
	events.SubscribeLogging(eventBus, logger)

	tokenAuth := middleware.NewTokenAuth(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Hour)

	// Initialize service and handlers
	svc := service.NewService(db, c, eventBus, flags, logger, tokenAuth.Sign)
	h := handler.NewHandlerWithOptions(svc, handler.NewHandlerOptions{
		MaxBodySize: cfg.Security.MaxRequestBodySize,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Rate, time.Duration(cfg.RateLimit.Window)*time.Second)
	defer rateLimiter.Stop()

	// Setup router
	r := chi.NewRouter()

	// Middleware (order matters: auth before rate limiting so the
	// limiter can key on the session user)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(tokenAuth.WithAuth)

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(rateLimiter))
	}
	if cfg.Tracing.Enabled {
		r.Use(middleware.TracingMiddleware())
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.Security.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Admin-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Route("/programs", func(r chi.Router) {
		r.Get("/", h.ListPrograms)
		r.Get("/{program_id}", h.GetProgram)
	})

	r.Get("/health", h.Health)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/quiz", h.SubmitQuiz)
		r.Get("/profile", h.GetProfile)

		r.Post("/enrollment", h.CreateEnrollment)
		r.Get("/enrollment", h.ListEnrollments)

		r.Post("/referral", h.TrackReferral)
		r.Get("/referral", h.GetReferralStats)

		r.Get("/cohorts/next", h.NextCohort)

		r.Get("/curriculum/{program_id}", h.GetCurriculum)
		r.Post("/progress", h.SaveProgress)

		r.Route("/cohort/feed", func(r chi.Router) {
			r.Get("/", h.GetCohortFeed)
			r.Post("/", h.PostCohortMessage)
		})
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminOnly(cfg.Security.AdminToken))

		r.Get("/overview", h.AdminOverview)
		r.Post("/cohorts", h.CreateCohort)
		r.Post("/referrals/{referral_id}/complete", h.CompleteReferral)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("addr", addr),
		zap.String("database", cfg.Database.Path),
		zap.Bool("tls", cfg.Server.EnableTLS),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled))

	if cfg.Server.EnableTLS {
		err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		logger.Fatal("server failed", zap.Error(err))
	}
}
