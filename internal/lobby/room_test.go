package lobby

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridlock-backend/internal/apperror"
	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

var (
	alice = &entity.Player{ID: "u1", Username: "alice"}
	bob   = &entity.Player{ID: "u2", Username: "bob"}
	carol = &entity.Player{ID: "u3", Username: "carol"}
)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	return newRoom("room-1", "ABC123", "test room", alice, 3)
}

func playingRoom(t *testing.T) *Room {
	t.Helper()

	room := newTestRoom(t)
	require.NoError(t, room.Join(bob))

	return room
}

func TestRoom_Join(t *testing.T) {
	t.Run("Second join starts the game with symbols by join order", func(t *testing.T) {
		// Given: a waiting room created by alice
		room := newTestRoom(t)

		// When: bob joins
		err := room.Join(bob)

		// Then: the room plays, alice is X and bob is O
		require.NoError(t, err)

		snapshot := room.Snapshot()
		assert.Equal(t, entity.RoomStatusPlaying, snapshot.Status)
		assert.Equal(t, 2, snapshot.PlayerCount)
		require.NotNil(t, snapshot.Game)
		assert.Equal(t, alice, snapshot.Game.PlayerX)
		assert.Equal(t, bob, snapshot.Game.PlayerO)
		assert.Equal(t, entity.SymbolX, snapshot.Game.CurrentTurn)
	})

	t.Run("Rejects a joined member", func(t *testing.T) {
		room := newTestRoom(t)

		err := room.Join(alice)

		require.ErrorIs(t, err, apperror.ErrAlreadyMember)
	})

	t.Run("Rejects a third player and keeps members unchanged", func(t *testing.T) {
		// Given: a full playing room
		room := playingRoom(t)

		// When: a third player tries to join
		err := room.Join(carol)

		// Then: the join is rejected without touching the member list
		require.ErrorIs(t, err, apperror.ErrRoomFull)
		assert.Equal(t, 2, room.Snapshot().PlayerCount)
	})

	t.Run("Concurrent joiners never overfill the room", func(t *testing.T) {
		// Given: a waiting room and two racing joiners
		room := newTestRoom(t)
		joiners := []*entity.Player{bob, carol}

		errs := make([]error, len(joiners))
		var wg sync.WaitGroup
		for i, joiner := range joiners {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = room.Join(joiner)
			}()
		}
		wg.Wait()

		// Then: exactly one join succeeds and the room has two members
		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 2, room.Snapshot().PlayerCount)
	})
}

func TestRoom_Leave(t *testing.T) {
	t.Run("Creator leaving a waiting room empties it with no outcome", func(t *testing.T) {
		room := newTestRoom(t)

		outcome, empty, err := room.Leave(alice.ID)

		require.NoError(t, err)
		assert.Nil(t, outcome)
		assert.True(t, empty)
	})

	t.Run("Leaving an active game forfeits it", func(t *testing.T) {
		// Given: a playing room
		room := playingRoom(t)

		// When: bob leaves mid-game
		outcome, empty, err := room.Leave(bob.ID)

		// Then: alice wins by forfeit and the room finishes
		require.NoError(t, err)
		require.NotNil(t, outcome)
		assert.Equal(t, alice, outcome.Winner)
		assert.Equal(t, bob, outcome.Loser)
		assert.False(t, empty)

		snapshot := room.Snapshot()
		assert.Equal(t, entity.RoomStatusFinished, snapshot.Status)
		assert.Equal(t, entity.StatusXWins, snapshot.Game.Status)
	})

	t.Run("Rejects a non-member", func(t *testing.T) {
		room := newTestRoom(t)

		_, _, err := room.Leave(carol.ID)

		require.ErrorIs(t, err, apperror.ErrNotMember)
	})

	t.Run("Leaving a finished room yields no second outcome", func(t *testing.T) {
		// Given: a room already finished by a forfeit
		room := playingRoom(t)
		first, _, err := room.Leave(bob.ID)
		require.NoError(t, err)
		require.NotNil(t, first)

		// When: the remaining member leaves too
		second, empty, err := room.Leave(alice.ID)

		// Then: no outcome is produced again and the room is now empty
		require.NoError(t, err)
		assert.Nil(t, second)
		assert.True(t, empty)
	})
}

func TestRoom_Move(t *testing.T) {
	t.Run("Move before the game starts", func(t *testing.T) {
		room := newTestRoom(t)

		_, _, err := room.Move(alice.ID, 0, 0)

		require.ErrorIs(t, err, apperror.ErrGameNotOngoing)
	})

	t.Run("Non-member cannot move", func(t *testing.T) {
		room := playingRoom(t)

		_, _, err := room.Move(carol.ID, 0, 0)

		require.ErrorIs(t, err, apperror.ErrNotMember)
	})

	t.Run("Winning move finishes the room exactly once", func(t *testing.T) {
		// Given: a game one move away from an X win
		room := playingRoom(t)
		mustMove(t, room, alice.ID, 0, 0)
		mustMove(t, room, bob.ID, 1, 0)
		mustMove(t, room, alice.ID, 0, 1)
		mustMove(t, room, bob.ID, 1, 1)

		// When: alice completes the top row
		game, outcome, err := room.Move(alice.ID, 0, 2)

		// Then: the game reports the win and the room finishes with an outcome
		require.NoError(t, err)
		assert.Equal(t, entity.StatusXWins, game.Status)
		require.NotNil(t, outcome)
		assert.Equal(t, alice, outcome.Winner)
		assert.Equal(t, bob, outcome.Loser)
		assert.Equal(t, entity.RoomStatusFinished, room.Snapshot().Status)

		// And: any further move fails without a second outcome
		_, again, err := room.Move(bob.ID, 2, 2)
		require.ErrorIs(t, err, apperror.ErrGameNotOngoing)
		assert.Nil(t, again)
	})

	t.Run("Draw outcome covers both members", func(t *testing.T) {
		room := playingRoom(t)
		moves := []struct {
			playerID string
			row, col int
		}{
			{alice.ID, 0, 0}, {bob.ID, 0, 1}, {alice.ID, 0, 2},
			{bob.ID, 1, 0}, {alice.ID, 1, 2}, {bob.ID, 1, 1},
			{alice.ID, 2, 1}, {bob.ID, 2, 2},
		}
		for _, move := range moves {
			mustMove(t, room, move.playerID, move.row, move.col)
		}

		game, outcome, err := room.Move(alice.ID, 2, 0)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusDraw, game.Status)
		require.NotNil(t, outcome)
		assert.Nil(t, outcome.Winner)
		assert.ElementsMatch(t, []*entity.Player{alice, bob}, outcome.Drawn)
	})

	t.Run("Concurrent moves from the wrong player all fail", func(t *testing.T) {
		// Given: a fresh game where it is alice's (X) turn
		room := playingRoom(t)

		const attempts = 16
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, errs[i] = room.Move(bob.ID, 0, 0)
			}()
		}
		wg.Wait()

		// Then: every out-of-turn attempt is rejected
		for _, err := range errs {
			require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		}
		assert.Equal(t, entity.EmptyCell, room.Snapshot().Game.Board[0][0])
	})

	t.Run("Exactly one concurrent move per turn succeeds", func(t *testing.T) {
		// Given: concurrent attempts by the turn owner on different cells
		room := playingRoom(t)

		cells := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}}
		errs := make([]error, len(cells))
		var wg sync.WaitGroup
		for i, cell := range cells {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, errs[i] = room.Move(alice.ID, cell[0], cell[1])
			}()
		}
		wg.Wait()

		// Then: one attempt lands, the rest lose the turn
		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, entity.SymbolO, room.Snapshot().Game.CurrentTurn)
	})
}

func mustMove(t *testing.T, room *Room, playerID string, row, col int) {
	t.Helper()

	_, _, err := room.Move(playerID, row, col)
	require.NoError(t, err)
}
