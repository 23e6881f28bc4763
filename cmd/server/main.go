package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachup_api/internal/api"
	"coachup_api/internal/app/service"
	"coachup_api/internal/common/security"
	"coachup_api/internal/domain/repository"
	"coachup_api/internal/platform/config"
	"coachup_api/internal/platform/database"
	"coachup_api/internal/platform/logging"
	"coachup_api/internal/platform/observability"
	"coachup_api/internal/platform/ratelimit"
)

func main() {
	// 1. Load Configuration
	config.Load()

	logger := logging.NewDefault()
	ctx := context.Background()

	// 2. Initialize JWT
	security.InitJWT()

	// 3. Initialize Sentry (no-op without a DSN)
	if err := observability.InitSentry(config.AppConfig.SentryDSN, config.AppConfig.AppEnv); err != nil {
		logger.Warn(ctx, "sentry init failed", "error", err.Error())
	}
	defer observability.FlushSentry()

	// 4. Initialize Database
	database.Connect()
	defer database.Close()

	// 5. Initialize Repositories & Services
	userRepo := repository.NewPgUserRepository(database.DB)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)

	// 6. Rate limiter + background sweep (bounds memory, not correctness)
	limiter := ratelimit.NewLimiter(config.AppConfig.RateLimitMaxKeys)
	sweepCtx, sweepCancel := context.WithCancel(ctx)
	defer sweepCancel()
	go limiter.Start(sweepCtx, config.AppConfig.RateLimitSweepInterval)

	// 7. Router & HTTP Server
	router := api.NewRouter(authService, userService, userRepo, limiter, logger)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(ctx, "server starting", "port", config.AppConfig.APIPort, "env", config.AppConfig.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	logger.Info(ctx, "shutting down server")
	sweepCancel() // Stop the limiter sweep

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	logger.Info(ctx, "server stopped gracefully")
}
