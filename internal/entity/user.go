package entity

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

func (that *User) AsPlayer() *Player {
	return &Player{
		ID:       that.ID,
		Username: that.Username,
	}
}
