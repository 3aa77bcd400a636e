package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/gridlock-backend/internal/apperror"
	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
	"github.com/rocketscienceinc/gridlock-backend/internal/lobby"
)

// GameplayService orchestrates room lifecycle on behalf of authenticated
// users: directory resolution, membership checks and stats recording on
// terminal transitions.
type GameplayService interface {
	CreateRoom(ctx context.Context, user *entity.User, name string) (*entity.RoomSnapshot, error)
	ListRooms(ctx context.Context) []*entity.RoomSnapshot
	GetRoom(ctx context.Context, userID, roomID string) (*entity.RoomSnapshot, error)
	JoinRoom(ctx context.Context, user *entity.User, roomID string) (*entity.RoomSnapshot, error)
	LeaveRoom(ctx context.Context, userID, roomID string) error
	MakeMove(ctx context.Context, userID, roomID string, row, col int) (*entity.GameSnapshot, error)
	QuickGame(ctx context.Context, user *entity.User) (*entity.RoomSnapshot, string, error)
}

type matchmaker interface {
	QuickGame(player *entity.Player) (*lobby.Room, string, error)
}

type gameplayService struct {
	logger *slog.Logger

	directory  *lobby.Directory
	matchmaker matchmaker
	stats      StatsService
	boardSize  int
}

func NewGameplayService(logger *slog.Logger, directory *lobby.Directory, matchmaker matchmaker, stats StatsService, boardSize int) GameplayService {
	return &gameplayService{
		logger:     logger.With("component", "gameplay"),
		directory:  directory,
		matchmaker: matchmaker,
		stats:      stats,
		boardSize:  boardSize,
	}
}

func (that *gameplayService) CreateRoom(_ context.Context, user *entity.User, name string) (*entity.RoomSnapshot, error) {
	if name == "" {
		name = fmt.Sprintf("Room %s", user.Username)
	}

	room := that.directory.Create(name, user.AsPlayer(), that.boardSize)

	return room.Snapshot(), nil
}

// ListRooms - waiting and playing rooms only, newest first. Finished rooms
// are kept for polling members but hidden from the public list.
func (that *gameplayService) ListRooms(_ context.Context) []*entity.RoomSnapshot {
	rooms := that.directory.List()

	snapshots := make([]*entity.RoomSnapshot, 0, len(rooms))
	for _, room := range rooms {
		snapshot := room.Snapshot()
		if snapshot.Status == entity.RoomStatusFinished {
			continue
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots
}

func (that *gameplayService) GetRoom(_ context.Context, userID, roomID string) (*entity.RoomSnapshot, error) {
	room, err := that.directory.GetByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if !room.HasMember(userID) {
		return nil, apperror.ErrNotMember
	}

	return room.Snapshot(), nil
}

func (that *gameplayService) JoinRoom(_ context.Context, user *entity.User, roomID string) (*entity.RoomSnapshot, error) {
	room, err := that.directory.GetByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if err = room.Join(user.AsPlayer()); err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	return room.Snapshot(), nil
}

// LeaveRoom - a leave during an active game forfeits it immediately and the
// recorded outcome credits the remaining member with the win.
func (that *gameplayService) LeaveRoom(ctx context.Context, userID, roomID string) error {
	room, err := that.directory.GetByID(roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	outcome, empty, err := room.Leave(userID)
	if err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	that.recordOutcome(ctx, roomID, outcome)

	if empty {
		that.directory.Remove(roomID)
	}

	return nil
}

func (that *gameplayService) MakeMove(ctx context.Context, userID, roomID string, row, col int) (*entity.GameSnapshot, error) {
	room, err := that.directory.GetByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	game, outcome, err := room.Move(userID, row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	that.recordOutcome(ctx, roomID, outcome)

	return game, nil
}

func (that *gameplayService) QuickGame(_ context.Context, user *entity.User) (*entity.RoomSnapshot, string, error) {
	room, action, err := that.matchmaker.QuickGame(user.AsPlayer())
	if err != nil {
		return nil, "", fmt.Errorf("failed to match quick game: %w", err)
	}

	return room.Snapshot(), action, nil
}

// recordOutcome - the move/leave itself already succeeded; a ledger fault is
// logged and must not fail the request.
func (that *gameplayService) recordOutcome(ctx context.Context, roomID string, outcome *entity.Outcome) {
	if outcome == nil {
		return
	}

	if err := that.stats.Record(ctx, outcome); err != nil {
		that.logger.Error("failed to record game outcome", "room_id", roomID, "error", err)
	}
}
