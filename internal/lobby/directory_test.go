package lobby

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridlock-backend/internal/apperror"
	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	directory := NewDirectory(logger, time.Minute, time.Minute, time.Hour)
	t.Cleanup(directory.Stop)

	return directory
}

func TestDirectory_CreateAndLookup(t *testing.T) {
	t.Run("Created rooms are found by id and by code", func(t *testing.T) {
		// Given: a directory with one room
		directory := newTestDirectory(t)
		room := directory.Create("alice's room", alice, 3)

		// When: looking the room up both ways
		byID, err := directory.GetByID(room.ID())
		require.NoError(t, err)

		byCode, err := directory.GetByCode(room.Code())
		require.NoError(t, err)

		// Then: both lookups return the same room
		assert.Same(t, room, byID)
		assert.Same(t, room, byCode)
		assert.Len(t, room.Code(), 6)
	})

	t.Run("Unknown id and code return not found", func(t *testing.T) {
		directory := newTestDirectory(t)

		_, err := directory.GetByID("missing")
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)

		_, err = directory.GetByCode("ZZZZZZ")
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Join codes are unique across rooms", func(t *testing.T) {
		directory := newTestDirectory(t)

		codes := make(map[string]bool)
		for i := 0; i < 50; i++ {
			room := directory.Create("room", alice, 3)
			assert.False(t, codes[room.Code()])
			codes[room.Code()] = true
		}
	})
}

func TestDirectory_List(t *testing.T) {
	t.Run("Lists rooms newest first", func(t *testing.T) {
		// Given: three rooms created in order
		directory := newTestDirectory(t)
		first := directory.Create("first", alice, 3)
		time.Sleep(2 * time.Millisecond)
		second := directory.Create("second", bob, 3)
		time.Sleep(2 * time.Millisecond)
		third := directory.Create("third", carol, 3)

		// When: listing
		rooms := directory.List()

		// Then: newest comes first
		require.Len(t, rooms, 3)
		assert.Equal(t, third.ID(), rooms[0].ID())
		assert.Equal(t, second.ID(), rooms[1].ID())
		assert.Equal(t, first.ID(), rooms[2].ID())
	})
}

func TestDirectory_Remove(t *testing.T) {
	directory := newTestDirectory(t)
	room := directory.Create("doomed", alice, 3)

	directory.Remove(room.ID())

	_, err := directory.GetByID(room.ID())
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)

	_, err = directory.GetByCode(room.Code())
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)

	// removing twice is a no-op
	directory.Remove(room.ID())
}

func TestDirectory_Sweep(t *testing.T) {
	t.Run("Evicts expired rooms and keeps live ones", func(t *testing.T) {
		// Given: a finished room, a stale waiting room and a fresh one
		directory := newTestDirectory(t)

		finished := directory.Create("finished", alice, 3)
		require.NoError(t, finished.Join(bob))
		_, _, err := finished.Leave(bob.ID)
		require.NoError(t, err)

		stale := directory.Create("stale", bob, 3)
		fresh := directory.Create("fresh", carol, 3)

		// When: sweeping far enough in the future for retention and timeout
		// to expire, but keeping the fresh room's timeout alive
		directory.finishedRetention = time.Minute
		directory.waitingTimeout = time.Minute
		fresh.createdAt = time.Now().Add(2 * time.Minute)
		directory.Sweep(time.Now().Add(90 * time.Second))

		// Then: only the fresh room survives
		_, err = directory.GetByID(finished.ID())
		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)

		_, err = directory.GetByID(stale.ID())
		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)

		_, err = directory.GetByID(fresh.ID())
		assert.NoError(t, err)
	})

	t.Run("Playing rooms are never swept", func(t *testing.T) {
		directory := newTestDirectory(t)
		room := directory.Create("active", alice, 3)
		require.NoError(t, room.Join(bob))

		directory.Sweep(time.Now().Add(24 * time.Hour))

		_, err := directory.GetByID(room.ID())
		assert.NoError(t, err)
	})

	t.Run("Emptied waiting rooms are swept immediately", func(t *testing.T) {
		// Given: a waiting room whose creator left
		directory := newTestDirectory(t)
		room := directory.Create("abandoned", alice, 3)
		_, empty, err := room.Leave(alice.ID)
		require.NoError(t, err)
		require.True(t, empty)

		// When: sweeping right away
		directory.Sweep(time.Now())

		// Then: the empty room is gone
		_, err = directory.GetByID(room.ID())
		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRoom_SnapshotShape(t *testing.T) {
	// Given: a playing room
	directory := newTestDirectory(t)
	room := directory.Create("shape", alice, 3)
	require.NoError(t, room.Join(bob))

	// When: taking a snapshot
	snapshot := room.Snapshot()

	// Then: it carries the full projection the polling client reads
	assert.Equal(t, room.ID(), snapshot.ID)
	assert.Equal(t, "shape", snapshot.Name)
	assert.Equal(t, room.Code(), snapshot.Code)
	assert.Equal(t, alice, snapshot.Creator)
	assert.Equal(t, []*entity.Player{alice, bob}, snapshot.Players)
	assert.Equal(t, 2, snapshot.PlayerCount)
	assert.Equal(t, entity.RoomStatusPlaying, snapshot.Status)
	require.NotNil(t, snapshot.Game)

	// And: mutating the snapshot's board does not leak into the room
	snapshot.Game.Board[0][0] = entity.SymbolO
	assert.Equal(t, entity.EmptyCell, room.Snapshot().Game.Board[0][0])
}
