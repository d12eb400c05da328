package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/config"
	"github.com/cmlichen-UTT/UA-api/internal/database"
	"github.com/cmlichen-UTT/UA-api/internal/handler"
	"github.com/cmlichen-UTT/UA-api/internal/repository"
	"github.com/cmlichen-UTT/UA-api/internal/usecase"
)

func main() {
	// Logger
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// Database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	itemRepo := repository.NewItemRepository(db)
	cartRepo := repository.NewCartRepository(db)

	// Use cases
	authUC := usecase.NewAuthUseCase(userRepo, cfg, logger)
	userUC := usecase.NewUserUseCase(userRepo, cfg, logger)
	teamUC := usecase.NewTeamUseCase(teamRepo, userRepo, cfg, logger)
	itemUC := usecase.NewItemUseCase(itemRepo, logger)
	cartUC := usecase.NewCartUseCase(cartRepo, itemRepo, userRepo, logger)

	// Echo + handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(authUC, userUC, teamUC, itemUC, cartUC, logger)
	apiHandler.RegisterRoutes(e, cfg, userRepo)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
