package apperror

import "errors"

var (
	ErrInvalidMove    = errors.New("invalid move")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrGameNotOngoing = errors.New("game is not ongoing")

	ErrRoomFull        = errors.New("room is full")
	ErrRoomNotJoinable = errors.New("room is not joinable")
	ErrAlreadyMember   = errors.New("already in the room")
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotMember       = errors.New("not a member of the room")

	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
