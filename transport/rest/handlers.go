package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

type authService interface {
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
	ParseToken(token string) (string, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
}

type gameplayService interface {
	CreateRoom(ctx context.Context, user *entity.User, name string) (*entity.RoomSnapshot, error)
	ListRooms(ctx context.Context) []*entity.RoomSnapshot
	GetRoom(ctx context.Context, userID, roomID string) (*entity.RoomSnapshot, error)
	JoinRoom(ctx context.Context, user *entity.User, roomID string) (*entity.RoomSnapshot, error)
	LeaveRoom(ctx context.Context, userID, roomID string) error
	MakeMove(ctx context.Context, userID, roomID string, row, col int) (*entity.GameSnapshot, error)
	QuickGame(ctx context.Context, user *entity.User) (*entity.RoomSnapshot, string, error)
}

type statsService interface {
	GetStats(ctx context.Context, userID string) (*entity.StatsRecord, error)
}

type Handlers struct {
	logger   *slog.Logger
	auth     authService
	gameplay gameplayService
	stats    statsService
}

func NewHandlers(logger *slog.Logger, auth authService, gameplay gameplayService, stats statsService) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		auth:     auth,
		gameplay: gameplay,
		stats:    stats,
	}
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	room, err := that.gameplay.CreateRoom(r.Context(), userFrom(r.Context()), request.Name)
	if err != nil {
		writeError(that.logger, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, room)
}

func (that *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, that.gameplay.ListRooms(r.Context()))
}

func (that *Handlers) RoomDetail(w http.ResponseWriter, r *http.Request) {
	room, err := that.gameplay.GetRoom(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"))
	if err != nil {
		writeError(that.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (that *Handlers) JoinRoom(w http.ResponseWriter, r *http.Request) {
	room, err := that.gameplay.JoinRoom(r.Context(), userFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(that.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (that *Handlers) LeaveRoom(w http.ResponseWriter, r *http.Request) {
	if err := that.gameplay.LeaveRoom(r.Context(), userFrom(r.Context()).ID, r.PathValue("id")); err != nil {
		writeError(that.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "left the room"})
}

func (that *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Row *int `json:"row"`
		Col *int `json:"col"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Row == nil || request.Col == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	game, err := that.gameplay.MakeMove(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"), *request.Row, *request.Col)
	if err != nil {
		writeError(that.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*entity.GameSnapshot{"game": game})
}

func (that *Handlers) QuickGame(w http.ResponseWriter, r *http.Request) {
	room, action, err := that.gameplay.QuickGame(r.Context(), userFrom(r.Context()))
	if err != nil {
		writeError(that.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"room":   room,
		"action": action,
	})
}

func (that *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	record, err := that.stats.GetStats(r.Context(), user.ID)
	if err != nil {
		writeError(that.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":         user.AsPlayer(),
		"games_played": record.GamesPlayed,
		"wins":         record.Wins,
		"losses":       record.Losses,
		"draws":        record.Draws,
	})
}
