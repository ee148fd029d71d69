package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubpuntos/loyalty-backend/api/routes"
	"github.com/clubpuntos/loyalty-backend/internal/config"
	"github.com/clubpuntos/loyalty-backend/internal/handlers"
	"github.com/clubpuntos/loyalty-backend/internal/services"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	mongorepo "github.com/clubpuntos/loyalty-backend/internal/repositories/mongodb"
	"github.com/clubpuntos/loyalty-backend/pkg/mongodb"
)

func main() {
	// A missing .env is fine, the environment takes over
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	userRepo := mongorepo.NewUserRepository(db)
	prizeRepo := mongorepo.NewPrizeRepository(db)
	transactionRepo := mongorepo.NewTransactionRepository(db)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndexes()
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		slog.Error("failed to create user indexes", "error", err)
		os.Exit(1)
	}
	if err := transactionRepo.EnsureIndexes(indexCtx); err != nil {
		slog.Error("failed to create transaction indexes", "error", err)
		os.Exit(1)
	}

	balanceService := services.NewBalanceService(userRepo)
	stockService := services.NewStockService(prizeRepo)
	transactionService := services.NewTransactionService(transactionRepo)
	redemptionService := services.NewRedemptionService(balanceService, stockService, transactionService, userRepo, prizeRepo)
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	prizeService := services.NewPrizeService(prizeRepo)

	deps := routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		UserHandler:        handlers.NewUserHandler(userService),
		PrizeHandler:       handlers.NewPrizeHandler(prizeService),
		TransactionHandler: handlers.NewTransactionHandler(transactionService),
		RedemptionHandler:  handlers.NewRedemptionHandler(redemptionService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
