package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/evalix/ai-readiness/internal/application"
	appadmin "github.com/evalix/ai-readiness/internal/application/admin"
	appassess "github.com/evalix/ai-readiness/internal/application/assessment"
	appauth "github.com/evalix/ai-readiness/internal/application/auth"
	appeval "github.com/evalix/ai-readiness/internal/application/evaluation"
	"github.com/evalix/ai-readiness/internal/config"
	"github.com/evalix/ai-readiness/internal/domain/assessment"
	"github.com/evalix/ai-readiness/internal/domain/benchmark"
	"github.com/evalix/ai-readiness/internal/domain/evaluation"
	"github.com/evalix/ai-readiness/internal/domain/notification"
	aiopenai "github.com/evalix/ai-readiness/internal/infra/ai/openai"
	"github.com/evalix/ai-readiness/internal/infra/cache"
	"github.com/evalix/ai-readiness/internal/infra/db/mysql"
	"github.com/evalix/ai-readiness/internal/infra/db/postgres"
	"github.com/evalix/ai-readiness/internal/infra/httpserver"
	"github.com/evalix/ai-readiness/internal/infra/mail"
	minioStore "github.com/evalix/ai-readiness/internal/infra/storage"
	"github.com/evalix/ai-readiness/internal/middleware"
)

func main() {
	// .env is optional, real deployments inject the environment directly
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect the response store
	var (
		db          *sql.DB
		assessRepo  assessment.Repository
		benchRepo   benchmark.Repository
		mailLogRepo notification.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		assessRepo = postgres.NewAssessmentRepository(db)
		benchRepo = postgres.NewBenchmarkRepository(db)
		mailLogRepo = postgres.NewNotificationRepository(db)
	default:
		db, err = mysql.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		assessRepo = mysql.NewAssessmentRepository(db)
		benchRepo = mysql.NewBenchmarkRepository(db)
		mailLogRepo = mysql.NewNotificationRepository(db)
	}
	defer db.Close()

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}

	// evaluation text generation is optional; without a key the canned
	// table serves every request
	var generator evaluation.Generator
	if cfg.OpenAI.APIKey != "" {
		generator = aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	var memo appeval.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		memo = cache.NewEvalCache(rdb, time.Duration(cfg.Redis.EvalTTLMinutes)*time.Minute)
		checkers["redis"] = &middleware.RedisHealthChecker{Client: rdb}
	}
	evalSvc := &appeval.Service{Generator: generator, Memo: memo}

	var mailer notification.Sender
	if cfg.Mail.APIKey != "" {
		mailer = mail.NewSender(cfg.Mail.APIKey, cfg.Mail.FromEmail, cfg.Mail.FromName)
	} else {
		log.Println("mail: no api key configured, report mails disabled")
	}

	var archive appadmin.ArchiveStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	}

	clock := application.SystemClock{}

	assessSvc := &appassess.Service{
		Repo:       assessRepo,
		Benchmarks: benchRepo,
		Evaluator:  evalSvc,
		Mailer:     mailer,
		MailLog:    mailLogRepo,
		Clock:      clock,
		SalesList:  cfg.Mail.SalesList,
		ResultURL:  cfg.Server.PublicURL + cfg.Server.ResultPath,
	}
	adminSvc := &appadmin.Service{
		Repo:       assessRepo,
		Benchmarks: benchRepo,
		MailLog:    mailLogRepo,
		Archive:    archive,
		Clock:      clock,
	}
	authSvc := appauth.NewService(
		cfg.Admin.Password,
		cfg.Admin.JWTSecret,
		time.Duration(cfg.Admin.TokenTTLHours)*time.Hour,
		clock,
	)

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Session-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if cfg.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}
	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Mount("/", httpserver.NewRouter(assessSvc, adminSvc, authSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
