package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

const (
	statsKeyPrefix = "stats:"

	fieldGamesPlayed = "games_played"
	fieldWins        = "wins"
	fieldLosses      = "losses"
	fieldDraws       = "draws"
)

// StatsRepository accumulates per-user game counters. Increments ride on
// redis HINCRBY, so concurrent finishes never lose an update.
type StatsRepository interface {
	IncrementWin(ctx context.Context, userID string) error
	IncrementLoss(ctx context.Context, userID string) error
	IncrementDraw(ctx context.Context, userID string) error
	GetByUserID(ctx context.Context, userID string) (*entity.StatsRecord, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) IncrementWin(ctx context.Context, userID string) error {
	return that.increment(ctx, userID, fieldWins)
}

func (that *dbStats) IncrementLoss(ctx context.Context, userID string) error {
	return that.increment(ctx, userID, fieldLosses)
}

func (that *dbStats) IncrementDraw(ctx context.Context, userID string) error {
	return that.increment(ctx, userID, fieldDraws)
}

// GetByUserID - a user with no recorded games gets an all-zero record.
func (that *dbStats) GetByUserID(ctx context.Context, userID string) (*entity.StatsRecord, error) {
	fields, err := that.client.HGetAll(ctx, statsKeyPrefix+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &entity.StatsRecord{
		GamesPlayed: parseCounter(fields[fieldGamesPlayed]),
		Wins:        parseCounter(fields[fieldWins]),
		Losses:      parseCounter(fields[fieldLosses]),
		Draws:       parseCounter(fields[fieldDraws]),
	}, nil
}

func (that *dbStats) increment(ctx context.Context, userID, field string) error {
	statsKey := statsKeyPrefix + userID

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, statsKey, fieldGamesPlayed, 1)
		pipe.HIncrBy(ctx, statsKey, field, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", field, err)
	}

	return nil
}

func parseCounter(value string) int {
	counter, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}

	return counter
}
