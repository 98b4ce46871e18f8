package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"brokerdex/internal/adapter/api"
	"brokerdex/internal/adapter/api/handler"
	apimiddleware "brokerdex/internal/adapter/api/middleware"
	"brokerdex/internal/adapter/api/router"
	"brokerdex/internal/adapter/repository"
	"brokerdex/internal/infrastructure/auth"
	"brokerdex/internal/infrastructure/storage"
	"brokerdex/internal/usecase"
	"brokerdex/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	storageClient, err := storage.NewLocalStorageClient(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	agentRepo := repository.NewPostgresAgentRepository(pool)
	reviewRepo := repository.NewPostgresReviewRepository(pool)
	registrationRepo := repository.NewPostgresRegistrationRepository(pool)
	userRepo := repository.NewPostgresUserRepository(pool)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	authUseCase := usecase.NewAuthUseCase(userRepo, jwtManager)
	agentUseCase := usecase.NewAgentUseCase(agentRepo, reviewRepo)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo)
	registrationUseCase := usecase.NewRegistrationUseCase(registrationRepo, storageClient)
	adminUseCase := usecase.NewAdminUseCase(agentRepo, registrationRepo)

	handler.Setup(authUseCase, agentUseCase, reviewUseCase, registrationUseCase, adminUseCase)
	handler.SetupHealthHandler(pool)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(jwtManager)
	adminMiddleware := apimiddleware.NewAdminMiddleware()

	router.Setup(e, authMiddleware, adminMiddleware)

	e.Static("/uploads", storageClient.Dir())

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
