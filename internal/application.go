package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gridlock-backend/internal/config"
	"github.com/rocketscienceinc/gridlock-backend/internal/lobby"
	"github.com/rocketscienceinc/gridlock-backend/internal/repository"
	"github.com/rocketscienceinc/gridlock-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gridlock-backend/internal/service"
	"github.com/rocketscienceinc/gridlock-backend/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if closeErr := redisStorage.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if closeErr := sqliteStorage.Connection.Close(); closeErr != nil {
			log.Error("could not close sqlite storage", "error", closeErr)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	userRepo := repository.NewUserRepository(sqliteStorage.Connection)
	statsRepo := repository.NewStatsRepository(redisStorage)

	authService := service.NewAuthService(userRepo, conf.JWTSecretKey)
	statsService := service.NewStatsService(statsRepo)

	directory := lobby.NewDirectory(logger, conf.Rooms.FinishedRetention, conf.Rooms.WaitingTimeout, conf.Rooms.SweepInterval)
	defer directory.Stop()

	matchmaker := lobby.NewMatchmaker(logger, directory, conf.Game.BoardSize)
	gameplayService := service.NewGameplayService(logger, directory, matchmaker, statsService, conf.Game.BoardSize)

	handlers := rest.NewHandlers(logger, authService, gameplayService, statsService)
	server := rest.New(logger, handlers)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := server.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
