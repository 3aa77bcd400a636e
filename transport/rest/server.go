package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Server struct {
	logger   *slog.Logger
	handlers *Handlers
}

func New(logger *slog.Logger, handlers *Handlers) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		handlers: handlers,
	}
}

// Start - serves until the context is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func (that *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.handlers.Ping)

	mux.HandleFunc("POST /register", that.handlers.Register)
	mux.HandleFunc("POST /login", that.handlers.Login)
	mux.HandleFunc("POST /logout", that.handlers.Logout)

	auth := that.handlers.RequireAuth

	mux.HandleFunc("GET /user", auth(that.handlers.CurrentUser))
	mux.HandleFunc("GET /stats", auth(that.handlers.Stats))

	mux.HandleFunc("GET /rooms", auth(that.handlers.ListRooms))
	mux.HandleFunc("POST /rooms/create", auth(that.handlers.CreateRoom))
	mux.HandleFunc("GET /rooms/{id}", auth(that.handlers.RoomDetail))
	mux.HandleFunc("POST /rooms/{id}/join", auth(that.handlers.JoinRoom))
	mux.HandleFunc("POST /rooms/{id}/leave", auth(that.handlers.LeaveRoom))
	mux.HandleFunc("POST /rooms/{id}/move", auth(that.handlers.MakeMove))
	mux.HandleFunc("POST /quick-game", auth(that.handlers.QuickGame))

	return mux
}
