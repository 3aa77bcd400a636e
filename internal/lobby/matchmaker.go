package lobby

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

const (
	ActionJoined  = "joined"
	ActionCreated = "created"
)

// Matchmaker is the quick-game entry point. Its mutex serializes the whole
// find-or-create sequence, so two simultaneous quick-game calls can never
// both create rooms when one could have paired them.
type Matchmaker struct {
	logger    *slog.Logger
	directory *Directory
	boardSize int

	mu sync.Mutex
}

func NewMatchmaker(logger *slog.Logger, directory *Directory, boardSize int) *Matchmaker {
	return &Matchmaker{
		logger:    logger.With("component", "matchmaker"),
		directory: directory,
		boardSize: boardSize,
	}
}

// QuickGame - joins a waiting room with a single member created by another
// user, or creates a fresh room with the player as creator. A candidate that
// filled up concurrently (a direct join racing past the matchmaker) is
// skipped, never double-filled.
func (that *Matchmaker) QuickGame(player *entity.Player) (*Room, string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, room := range that.directory.List() {
		if !room.OpenFor(player.ID) {
			continue
		}

		if err := room.Join(player); err != nil {
			that.logger.Debug("quick-game candidate lost", "room_id", room.id, "error", err)
			continue
		}

		that.logger.Info("quick game matched", "room_id", room.id, "player", player.ID)

		return room, ActionJoined, nil
	}

	room := that.directory.Create(fmt.Sprintf("Quick game %s", player.Username), player, that.boardSize)

	return room, ActionCreated, nil
}
