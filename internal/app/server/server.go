package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"hrops/internal/domain/attendance"
	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/bonus"
	"hrops/internal/domain/employee"
	"hrops/internal/domain/export"
	"hrops/internal/domain/leave"
	"hrops/internal/domain/medical"
	"hrops/internal/platform/cache"
	"hrops/internal/platform/config"
	"hrops/internal/platform/db"
	attendancehandler "hrops/internal/transport/http/handlers/attendance"
	audithandler "hrops/internal/transport/http/handlers/audit"
	authhandler "hrops/internal/transport/http/handlers/auth"
	bonushandler "hrops/internal/transport/http/handlers/bonus"
	employeehandler "hrops/internal/transport/http/handlers/employee"
	exporthandler "hrops/internal/transport/http/handlers/export"
	leavehandler "hrops/internal/transport/http/handlers/leave"
	medicalhandler "hrops/internal/transport/http/handlers/medical"
	"hrops/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	statsCache := cache.New(cfg.RedisAddr, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	defer func() {
		if err := statsCache.Close(); err != nil {
			log.Printf("cache close failed: %v", err)
		}
	}()

	authStore := auth.NewStore(pool)
	auditSvc := audit.New(pool)
	employeeSvc := employee.NewService(employee.NewStore(pool), statsCache)
	attendanceStore := attendance.NewStore(pool)
	attendanceSvc := attendance.NewService(attendanceStore, statsCache)
	leaveSvc := leave.NewService(leave.NewStore(pool), statsCache)
	medicalSvc := medical.NewService(medical.NewStore(pool), statsCache)
	bonusSvc := bonus.NewService(bonus.NewStore(pool), attendanceStore, statsCache, cfg.ReportDir)
	exportSvc := export.NewService(export.NewStore(pool), cfg.ExportDir)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recover)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Total-Count", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret, auditSvc).RegisterRoutes(r)
		employeehandler.NewHandler(employeeSvc, authStore, auditSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc, authStore, auditSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, authStore, auditSvc).RegisterRoutes(r)
		medicalhandler.NewHandler(medicalSvc, authStore, auditSvc).RegisterRoutes(r)
		bonushandler.NewHandler(bonusSvc, authStore, auditSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, authStore).RegisterRoutes(r)
		exporthandler.NewHandler(exportSvc, authStore, auditSvc).RegisterRoutes(r)
	})

	log.Printf("hrops server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
