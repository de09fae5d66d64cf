package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	catalogHandler "edupath/internal/catalog/handler"
	catalogService "edupath/internal/catalog/service"
	catalogStore "edupath/internal/catalog/store"
	"edupath/internal/enrichment"
	marketHandler "edupath/internal/market/handler"
	marketService "edupath/internal/market/service"
	marketStore "edupath/internal/market/store"
	"edupath/internal/orchestrator"
	"edupath/internal/platform/config"
	"edupath/internal/platform/httpserver"
	"edupath/internal/platform/logger"
	"edupath/internal/platform/metrics"
	"edupath/internal/platform/postgres"
	"edupath/internal/platform/redis"
	"edupath/internal/recommendation/engine"
	recHandler "edupath/internal/recommendation/handler"
	recStore "edupath/internal/recommendation/store"
	sessionHandler "edupath/internal/session/handler"
	sessionStore "edupath/internal/session/store"
	studentHandler "edupath/internal/student/handler"
	studentService "edupath/internal/student/service"
	studentStore "edupath/internal/student/store"
	"edupath/internal/transport/http/shared"
	"edupath/pkg/platform/audit/publisher"
)

// main wires the pipeline dependencies and keeps the server lifecycle small.
// Postgres, Redis, Kafka, and Gemini are all optional: the server degrades to
// seeded in-memory stores and fallback content so a bare `go run` works.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		log.Warn("postgres unavailable, using seeded in-memory stores", "error", err.Error())
		db = nil
	} else {
		defer db.Close()
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, sessions held in memory", "error", err.Error())
		redisClient = nil
	} else if redisClient != nil {
		defer redisClient.Close()
	}

	var students studentService.Store
	var catalog catalogService.Store
	var market marketService.Store
	var outputs interface {
		orchestrator.RecommendationSink
		recHandler.OutputStore
	}
	if db != nil {
		students = studentStore.NewPostgres(db)
		catalog = catalogStore.NewPostgres(db)
		market = marketStore.NewPostgres(db)
		outputs = recStore.NewPostgres(db)
	} else {
		students = studentStore.NewInMemory()
		catalogMem := catalogStore.NewInMemory()
		if err := catalogStore.Seed(ctx, catalogMem); err != nil {
			log.Error("failed to seed catalog", "error", err.Error())
			os.Exit(1)
		}
		catalog = catalogMem
		marketMem := marketStore.NewInMemory()
		if err := marketStore.Seed(ctx, marketMem); err != nil {
			log.Error("failed to seed market data", "error", err.Error())
			os.Exit(1)
		}
		market = marketMem
		outputs = recStore.NewInMemory()
	}

	var sessions orchestrator.SessionStore
	if redisClient != nil {
		sessions, err = sessionStore.NewRedis(redisClient, cfg.SessionRetention)
		if err != nil {
			log.Error("failed to build session store", "error", err.Error())
			os.Exit(1)
		}
	} else {
		sessions = sessionStore.NewInMemory(cfg.SessionRetention)
	}

	studentSvc, err := studentService.New(students, studentService.WithLogger(log))
	if err != nil {
		log.Error("failed to build student service", "error", err.Error())
		os.Exit(1)
	}
	catalogSvc, err := catalogService.New(catalog, catalogService.WithLogger(log))
	if err != nil {
		log.Error("failed to build catalog service", "error", err.Error())
		os.Exit(1)
	}
	analyzer, err := marketService.New(market, marketService.WithLogger(log))
	if err != nil {
		log.Error("failed to build market analyzer", "error", err.Error())
		os.Exit(1)
	}
	eng, err := engine.New(engine.DefaultConfig(), engine.WithLogger(log), engine.WithMetrics(m))
	if err != nil {
		log.Error("failed to build recommendation engine", "error", err.Error())
		os.Exit(1)
	}

	var generator enrichment.ContentGenerator
	if cfg.Gemini.APIKey != "" {
		gen, err := enrichment.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Warn("gemini unavailable, enrichment falls back to bundled content", "error", err.Error())
		} else {
			generator = gen
		}
	}
	var cache *enrichment.Cache
	if redisClient != nil {
		cache = enrichment.NewCache(redisClient, m)
	}
	enricher := enrichment.New(generator,
		enrichment.WithLogger(log),
		enrichment.WithCache(cache),
	)

	orchOpts := []orchestrator.Option{
		orchestrator.WithLogger(log),
		orchestrator.WithMetrics(m),
		orchestrator.WithSink(outputs),
		orchestrator.WithEnricher(enricher),
		orchestrator.WithStageTimeout(cfg.StageTimeout),
	}
	auditPub, err := publisher.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		log.Warn("kafka unavailable, audit events disabled", "error", err.Error())
	} else if auditPub != nil {
		defer auditPub.Close()
		orchOpts = append(orchOpts, orchestrator.WithAuditPublisher(auditPub))
	}

	orch, err := orchestrator.New(studentSvc, catalogSvc, analyzer, eng, sessions, orchOpts...)
	if err != nil {
		log.Error("failed to build orchestrator", "error", err.Error())
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Route("/api/v1", func(api chi.Router) {
		studentHandler.New(studentSvc, log).Register(api)
		catalogHandler.New(catalogSvc, log).Register(api)
		marketHandler.New(analyzer, log).Register(api)
		recHandler.New(orch, outputs, log).Register(api)
		sessionHandler.New(sessions, log).Register(api)
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting edupath server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
