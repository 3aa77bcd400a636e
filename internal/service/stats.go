package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

// StatsService is the ledger of concluded games. It is a plain accumulator;
// recording exactly once per game is guaranteed by the room's one-shot
// finish transition, not here.
type StatsService interface {
	Record(ctx context.Context, outcome *entity.Outcome) error
	GetStats(ctx context.Context, userID string) (*entity.StatsRecord, error)
}

type statsRepo interface {
	IncrementWin(ctx context.Context, userID string) error
	IncrementLoss(ctx context.Context, userID string) error
	IncrementDraw(ctx context.Context, userID string) error
	GetByUserID(ctx context.Context, userID string) (*entity.StatsRecord, error)
}

type statsService struct {
	statsRepo statsRepo
}

func NewStatsService(statsRepo statsRepo) StatsService {
	return &statsService{
		statsRepo: statsRepo,
	}
}

func (that *statsService) Record(ctx context.Context, outcome *entity.Outcome) error {
	if outcome == nil {
		return nil
	}

	for _, player := range outcome.Drawn {
		if err := that.statsRepo.IncrementDraw(ctx, player.ID); err != nil {
			return fmt.Errorf("failed to record draw: %w", err)
		}
	}

	if outcome.Winner != nil {
		if err := that.statsRepo.IncrementWin(ctx, outcome.Winner.ID); err != nil {
			return fmt.Errorf("failed to record win: %w", err)
		}
	}

	if outcome.Loser != nil {
		if err := that.statsRepo.IncrementLoss(ctx, outcome.Loser.ID); err != nil {
			return fmt.Errorf("failed to record loss: %w", err)
		}
	}

	return nil
}

func (that *statsService) GetStats(ctx context.Context, userID string) (*entity.StatsRecord, error) {
	record, err := that.statsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return record, nil
}
