// File: app/app.go
package app

import (
	"context"
	"go-auth-api/config"
	"go-auth-api/db"
	"go-auth-api/handler"
	"go-auth-api/logger"
	"go-auth-api/repository"
	"go-auth-api/router"
	"go-auth-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	// --- Wiring All Layers Together ---
	// Repositories, services and handlers are created here and injected
	// top-down; nothing reads shared mutable state at request time.

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)

	// The role set is pre-seeded and read-heavy, so role lookups go through
	// a Redis cache-aside when Redis is reachable. The cache is only an
	// optimization; without it the repository is used directly.
	var roleRepo repository.IRoleRepository = repository.NewRoleRepository(database)
	if redisClient, err := db.ConnectRedis(); err != nil {
		logger.Log.WithError(err).Warn("Redis unavailable, role lookups will not be cached")
	} else {
		defer redisClient.Close()
		roleRepo = service.NewRoleCache(roleRepo, redisClient)
	}

	jwtCfg := config.AppConfig.JWT
	tokenService := service.NewTokenService(
		jwtCfg.SecretKey,
		time.Duration(jwtCfg.AccessExpirationMs)*time.Millisecond,
	)
	refreshTTL := time.Duration(jwtCfg.RefreshExpirationDays) * 24 * time.Hour

	authService := service.NewAuthService(
		userRepo, roleRepo, tokenRepo,
		tokenService, service.NewBcryptHasher(), refreshTTL,
	)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)

	r := router.NewRouter(authHandler, userHandler, tokenService)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
