package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/app"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/config"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/database"
	apphttp "github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/handlers"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/metrics"
	httpmw "github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/middleware"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/response"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/janitor"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/observability"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/repository/postgres"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	refreshRepo := postgres.NewRefreshTokenRepository(db)

	blobStore := blob.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket, &http.Client{Timeout: 30 * time.Second})
	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, refreshRepo, jwtProvider, logger, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	profileService := app.NewProfileService(userRepo, blobStore)
	companyService := app.NewCompanyService(companyRepo, userRepo, blobStore)
	jobService := app.NewJobService(jobRepo, userRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, userRepo, blobStore)

	var rateLimiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		rateLimiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	authHandler := handlers.NewAuthHandler(authService, rateLimiter)
	profileHandler := handlers.NewProfileHandler(profileService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, rateLimiter)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	cleaner := janitor.New(refreshRepo, logger)
	if err := cleaner.Start(); err != nil {
		log.Fatalf("failed to start janitor: %v", err)
	}

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		ProfileHandler:     profileHandler,
		CompanyHandler:     companyHandler,
		JobHandler:         jobHandler,
		ApplicationHandler: applicationHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     authMiddleware,
		Metrics:            collector,
		RequestTimeout:     cfg.RequestTimeout,
		MaxBodyBytes:       cfg.MaxUploadBytes + (1 << 20),
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cleaner.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
