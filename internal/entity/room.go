package entity

import "time"

const (
	RoomStatusWaiting  = "waiting"
	RoomStatusPlaying  = "playing"
	RoomStatusFinished = "finished"
)

// RoomSnapshot is the read-only projection of a room returned to polling
// clients; Game is present once the room has started playing.
type RoomSnapshot struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Code        string        `json:"code"`
	Creator     *Player       `json:"creator"`
	Players     []*Player     `json:"players"`
	PlayerCount int           `json:"player_count"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	Game        *GameSnapshot `json:"game,omitempty"`
}
