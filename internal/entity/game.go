package entity

import (
	"time"

	"github.com/google/uuid"
)

// Game is the live state machine of a single match between two players.
// PlayerX is always the first member of the room and always moves first.
type Game struct {
	ID          string
	PlayerX     *Player
	PlayerO     *Player
	CurrentTurn string
	Board       Board
	Status      string
	Winner      *Player
	CreatedAt   time.Time
	FinishedAt  time.Time
}

func NewGame(playerX, playerO *Player, boardSize int) *Game {
	return &Game{
		ID:          uuid.NewString(),
		PlayerX:     playerX,
		PlayerO:     playerO,
		CurrentTurn: SymbolX,
		Board:       NewBoard(boardSize),
		Status:      StatusOngoing,
		CreatedAt:   time.Now(),
	}
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// SymbolOf - returns the symbol owned by the given player, if any.
func (that *Game) SymbolOf(playerID string) (string, bool) {
	switch {
	case that.PlayerX != nil && that.PlayerX.ID == playerID:
		return SymbolX, true
	case that.PlayerO != nil && that.PlayerO.ID == playerID:
		return SymbolO, true
	default:
		return "", false
	}
}

func (that *Game) PlayerBySymbol(symbol string) *Player {
	if symbol == SymbolX {
		return that.PlayerX
	}

	return that.PlayerO
}

// Finish - moves the game into a terminal status. The board is immutable
// from here on; CurrentTurn is left as-is for the last mover.
func (that *Game) Finish(status string) {
	that.Status = status
	that.FinishedAt = time.Now()

	switch status {
	case StatusXWins:
		that.Winner = that.PlayerX
	case StatusOWins:
		that.Winner = that.PlayerO
	}
}

// GameSnapshot is the read-only projection of a game returned to polling
// clients.
type GameSnapshot struct {
	ID          string     `json:"id"`
	PlayerX     *Player    `json:"player_x"`
	PlayerO     *Player    `json:"player_o"`
	CurrentTurn string     `json:"current_turn"`
	Board       Board      `json:"board"`
	Status      string     `json:"status"`
	Winner      *Player    `json:"winner,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// Snapshot - copies the game state; the caller must hold the owning room's
// lock so the copy is a consistent point-in-time view.
func (that *Game) Snapshot() *GameSnapshot {
	snapshot := &GameSnapshot{
		ID:          that.ID,
		PlayerX:     that.PlayerX,
		PlayerO:     that.PlayerO,
		CurrentTurn: that.CurrentTurn,
		Board:       that.Board.Clone(),
		Status:      that.Status,
		Winner:      that.Winner,
		CreatedAt:   that.CreatedAt,
	}

	if !that.FinishedAt.IsZero() {
		finishedAt := that.FinishedAt
		snapshot.FinishedAt = &finishedAt
	}

	return snapshot
}

// Outcome reports the terminal result of one game, produced exactly once by
// the owning room's finish transition and consumed by the stats ledger.
type Outcome struct {
	Winner *Player
	Loser  *Player
	Drawn  []*Player
}
