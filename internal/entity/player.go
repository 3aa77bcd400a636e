package entity

// Player is the projection of a user that participates in rooms and games.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
