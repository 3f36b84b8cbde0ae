package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"taskforce/internal/cache"
	"taskforce/internal/config"
	"taskforce/internal/database"
	"taskforce/internal/repository"
	"taskforce/internal/router"
	"taskforce/internal/services"
	"taskforce/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional redis-backed revocation cache; nil degrades to DB lookups
	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPassword, 0)
	}

	// Wire repositories and services
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokenRepo := repository.NewRevokedTokenRepository(db)

	tokenService := token.NewService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokenRepo, tokenService, cacheClient)
	userService := services.NewUserService(userRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	// Housekeeping: drop revocation rows for tokens that have expired anyway
	go pruneRevokedTokens(tokenRepo)

	r := router.New(router.Deps{
		AuthService: authService,
		UserService: userService,
		TaskService: taskService,
	})

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func pruneRevokedTokens(tokenRepo repository.RevokedTokenRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		pruned, err := tokenRepo.DeleteExpired(time.Now())
		if err != nil {
			log.Printf("Failed to prune revoked tokens: %v", err)
			continue
		}
		if pruned > 0 {
			log.Printf("Pruned %d expired revoked tokens", pruned)
		}
	}
}
