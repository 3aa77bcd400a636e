package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

// fakeStatsRepo counts increments in memory for service tests.
type fakeStatsRepo struct {
	records map[string]*entity.StatsRecord
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{records: make(map[string]*entity.StatsRecord)}
}

func (that *fakeStatsRepo) record(userID string) *entity.StatsRecord {
	if that.records[userID] == nil {
		that.records[userID] = &entity.StatsRecord{}
	}
	return that.records[userID]
}

func (that *fakeStatsRepo) IncrementWin(_ context.Context, userID string) error {
	record := that.record(userID)
	record.GamesPlayed++
	record.Wins++
	return nil
}

func (that *fakeStatsRepo) IncrementLoss(_ context.Context, userID string) error {
	record := that.record(userID)
	record.GamesPlayed++
	record.Losses++
	return nil
}

func (that *fakeStatsRepo) IncrementDraw(_ context.Context, userID string) error {
	record := that.record(userID)
	record.GamesPlayed++
	record.Draws++
	return nil
}

func (that *fakeStatsRepo) GetByUserID(_ context.Context, userID string) (*entity.StatsRecord, error) {
	return that.record(userID), nil
}

func TestStatsService_Record(t *testing.T) {
	winner := &entity.Player{ID: "w", Username: "winner"}
	loser := &entity.Player{ID: "l", Username: "loser"}

	t.Run("Win and loss are attributed to the right players", func(t *testing.T) {
		// Given: a decided game
		statsRepo := newFakeStatsRepo()
		stats := NewStatsService(statsRepo)

		// When: recording the outcome
		err := stats.Record(context.Background(), &entity.Outcome{Winner: winner, Loser: loser})
		require.NoError(t, err)

		// Then: the winner gets a win, the loser a loss, both one game played
		winnerRecord, err := stats.GetStats(context.Background(), winner.ID)
		require.NoError(t, err)
		assert.Equal(t, &entity.StatsRecord{GamesPlayed: 1, Wins: 1}, winnerRecord)

		loserRecord, err := stats.GetStats(context.Background(), loser.ID)
		require.NoError(t, err)
		assert.Equal(t, &entity.StatsRecord{GamesPlayed: 1, Losses: 1}, loserRecord)
	})

	t.Run("Draw is recorded for both players", func(t *testing.T) {
		statsRepo := newFakeStatsRepo()
		stats := NewStatsService(statsRepo)

		err := stats.Record(context.Background(), &entity.Outcome{Drawn: []*entity.Player{winner, loser}})
		require.NoError(t, err)

		for _, player := range []*entity.Player{winner, loser} {
			record, err := stats.GetStats(context.Background(), player.ID)
			require.NoError(t, err)
			assert.Equal(t, &entity.StatsRecord{GamesPlayed: 1, Draws: 1}, record)
		}
	})

	t.Run("Nil outcome is a no-op", func(t *testing.T) {
		statsRepo := newFakeStatsRepo()
		stats := NewStatsService(statsRepo)

		require.NoError(t, stats.Record(context.Background(), nil))
		assert.Empty(t, statsRepo.records)
	})
}
