package lobby

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/rocketscienceinc/gridlock-backend/internal/apperror"
	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
	"github.com/rocketscienceinc/gridlock-backend/internal/pkg"
)

const joinCodeLength = 6

// Directory is the process-wide registry of rooms, keyed by id and by join
// code. Its mutex guards only the maps; every room carries its own lock, so
// a move being applied in one room never stalls lookups or matchmaking.
type Directory struct {
	logger *slog.Logger

	finishedRetention time.Duration
	waitingTimeout    time.Duration

	mu    sync.RWMutex
	rooms map[string]*Room
	codes map[string]string

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewDirectory(logger *slog.Logger, finishedRetention, waitingTimeout, sweepInterval time.Duration) *Directory {
	directory := &Directory{
		logger:            logger.With("component", "lobby"),
		finishedRetention: finishedRetention,
		waitingTimeout:    waitingTimeout,
		rooms:             make(map[string]*Room),
		codes:             make(map[string]string),
		stopCh:            make(chan struct{}),
	}

	directory.wg.Add(1)
	go directory.sweepLoop(sweepInterval)

	return directory
}

// Create - allocates a room with a directory-unique join code. Insertion and
// the collision check happen under one lock acquisition.
func (that *Directory) Create(name string, creator *entity.Player, boardSize int) *Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := pkg.NewJoinCode(joinCodeLength)
	for _, taken := that.codes[code]; taken; _, taken = that.codes[code] {
		code = pkg.NewJoinCode(joinCodeLength)
	}

	room := newRoom(pkg.NewID(), code, name, creator, boardSize)
	that.rooms[room.id] = room
	that.codes[room.code] = room.id

	that.logger.Info("room created", "room_id", room.id, "code", room.code, "creator", creator.ID)

	return room
}

func (that *Directory) GetByID(id string) (*Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrRoomNotFound, id)
	}

	return room, nil
}

func (that *Directory) GetByCode(code string) (*Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	id, ok := that.codes[code]
	if !ok {
		return nil, fmt.Errorf("%w: code %s", apperror.ErrRoomNotFound, code)
	}

	return that.rooms[id], nil
}

// List - returns all rooms, newest first.
func (that *Directory) List() []*Room {
	that.mu.RLock()
	rooms := make([]*Room, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, room)
	}
	that.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt().After(rooms[j].CreatedAt())
	})

	return rooms
}

func (that *Directory) Remove(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[id]
	if !ok {
		return
	}

	delete(that.rooms, id)
	delete(that.codes, room.code)

	that.logger.Info("room removed", "room_id", id)
}

// Stop - terminates the sweeper and waits for it to exit.
func (that *Directory) Stop() {
	close(that.stopCh)
	that.wg.Wait()
}

func (that *Directory) sweepLoop(interval time.Duration) {
	defer that.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			that.Sweep(time.Now())
		case <-that.stopCh:
			return
		}
	}
}

// Sweep - evicts finished rooms past the retention window and waiting rooms
// abandoned past the timeout. Eligibility is checked outside the directory
// lock so a busy room cannot stall the registry.
func (that *Directory) Sweep(now time.Time) {
	var expired []string
	for _, room := range that.List() {
		if room.Sweepable(now, that.finishedRetention, that.waitingTimeout) {
			expired = append(expired, room.id)
		}
	}

	for _, id := range expired {
		that.Remove(id)
	}

	if len(expired) > 0 {
		that.logger.Info("swept rooms", "count", len(expired))
	}
}
