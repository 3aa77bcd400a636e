package lobby

import (
	"sync"
	"time"

	"github.com/rocketscienceinc/gridlock-backend/internal/apperror"
	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
	"github.com/rocketscienceinc/gridlock-backend/internal/tictactoe"
)

// Room is a lobby wrapping at most one active game. Every mutation and every
// snapshot read goes through the room's own mutex, so concurrent requests on
// the same room never observe a torn state. Identity fields are immutable
// after creation and safe to read without the lock.
type Room struct {
	id        string
	code      string
	name      string
	creator   *entity.Player
	boardSize int
	createdAt time.Time

	mu         sync.Mutex
	members    []*entity.Player
	status     string
	game       *entity.Game
	finishedAt time.Time
}

func newRoom(id, code, name string, creator *entity.Player, boardSize int) *Room {
	return &Room{
		id:        id,
		code:      code,
		name:      name,
		creator:   creator,
		boardSize: boardSize,
		createdAt: time.Now(),
		members:   []*entity.Player{creator},
		status:    entity.RoomStatusWaiting,
	}
}

func (that *Room) ID() string {
	return that.id
}

func (that *Room) Code() string {
	return that.code
}

func (that *Room) CreatedAt() time.Time {
	return that.createdAt
}

// Join - appends the player as the second member and starts the game. The
// first member plays X, the joiner plays O.
func (that *Room) Join(player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.hasMemberLocked(player.ID) {
		return apperror.ErrAlreadyMember
	}

	if len(that.members) >= maxMembers {
		return apperror.ErrRoomFull
	}

	if that.status != entity.RoomStatusWaiting {
		return apperror.ErrRoomNotJoinable
	}

	that.members = append(that.members, player)

	if len(that.members) == maxMembers {
		that.game = entity.NewGame(that.members[0], that.members[1], that.boardSize)
		that.status = entity.RoomStatusPlaying
	}

	return nil
}

// Leave - removes the player. Leaving an active game forfeits it: the
// remaining member wins and the room finishes. The second return value
// reports whether the room is now empty and can be dropped from the
// directory.
func (that *Room) Leave(playerID string) (*entity.Outcome, bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.hasMemberLocked(playerID) {
		return nil, false, apperror.ErrNotMember
	}

	var outcome *entity.Outcome

	if that.status == entity.RoomStatusPlaying && that.game.IsOngoing() {
		remaining := that.otherMemberLocked(playerID)

		symbol, _ := that.game.SymbolOf(remaining.ID)
		if symbol == entity.SymbolX {
			that.game.Finish(entity.StatusXWins)
		} else {
			that.game.Finish(entity.StatusOWins)
		}

		outcome = that.finishLocked()
	}

	that.removeMemberLocked(playerID)

	return outcome, len(that.members) == 0, nil
}

// Move - applies one turn for the acting player. On a terminal result the
// room transitions to finished exactly once and the outcome is returned so
// the caller can record stats.
func (that *Room) Move(playerID string, row, col int) (*entity.GameSnapshot, *entity.Outcome, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.hasMemberLocked(playerID) {
		return nil, nil, apperror.ErrNotMember
	}

	if that.game == nil {
		return nil, nil, apperror.ErrGameNotOngoing
	}

	if err := tictactoe.ApplyTurn(that.game, playerID, row, col); err != nil {
		return nil, nil, err
	}

	var outcome *entity.Outcome
	if !that.game.IsOngoing() {
		outcome = that.finishLocked()
	}

	return that.game.Snapshot(), outcome, nil
}

// Snapshot - produces a consistent point-in-time projection for pollers.
func (that *Room) Snapshot() *entity.RoomSnapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	members := make([]*entity.Player, len(that.members))
	copy(members, that.members)

	snapshot := &entity.RoomSnapshot{
		ID:          that.id,
		Name:        that.name,
		Code:        that.code,
		Creator:     that.creator,
		Players:     members,
		PlayerCount: len(members),
		Status:      that.status,
		CreatedAt:   that.createdAt,
	}

	if that.game != nil {
		snapshot.Game = that.game.Snapshot()
	}

	return snapshot
}

func (that *Room) HasMember(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.hasMemberLocked(playerID)
}

// OpenFor - reports whether the room is a valid quick-game candidate for the
// player: still waiting with a single member and created by someone else.
func (that *Room) OpenFor(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.status == entity.RoomStatusWaiting &&
		len(that.members) == 1 &&
		that.creator.ID != playerID &&
		!that.hasMemberLocked(playerID)
}

// Sweepable - reports whether the directory sweeper may evict the room.
func (that *Room) Sweepable(now time.Time, finishedRetention, waitingTimeout time.Duration) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch that.status {
	case entity.RoomStatusFinished:
		return now.Sub(that.finishedAt) > finishedRetention
	case entity.RoomStatusWaiting:
		return len(that.members) == 0 || now.Sub(that.createdAt) > waitingTimeout
	default:
		return false
	}
}

const maxMembers = 2

// finishLocked - the one-shot transition into the finished status. Returns
// nil when the room is already finished, which guards stats from being
// recorded twice for one game.
func (that *Room) finishLocked() *entity.Outcome {
	if that.status == entity.RoomStatusFinished {
		return nil
	}

	that.status = entity.RoomStatusFinished
	that.finishedAt = time.Now()

	game := that.game
	if game == nil {
		return nil
	}

	if game.Status == entity.StatusDraw {
		return &entity.Outcome{Drawn: []*entity.Player{game.PlayerX, game.PlayerO}}
	}

	loser := game.PlayerO
	if game.Winner != nil && game.Winner.ID == game.PlayerO.ID {
		loser = game.PlayerX
	}

	return &entity.Outcome{Winner: game.Winner, Loser: loser}
}

func (that *Room) hasMemberLocked(playerID string) bool {
	for _, member := range that.members {
		if member.ID == playerID {
			return true
		}
	}

	return false
}

func (that *Room) otherMemberLocked(playerID string) *entity.Player {
	for _, member := range that.members {
		if member.ID != playerID {
			return member
		}
	}

	return nil
}

func (that *Room) removeMemberLocked(playerID string) {
	for i, member := range that.members {
		if member.ID == playerID {
			that.members = append(that.members[:i], that.members[i+1:]...)
			return
		}
	}
}
