package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/gridlock-backend/internal/apperror"
	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

// ApplyTurn - runs one full turn transition: validate the acting player and
// the move, mutate the board, re-evaluate and either flip the turn or finish
// the game. The caller must serialize invocations per game.
func ApplyTurn(game *entity.Game, playerID string, row, col int) error {
	if !game.IsOngoing() {
		return apperror.ErrGameNotOngoing
	}

	symbol, ok := game.SymbolOf(playerID)
	if !ok || symbol != game.CurrentTurn {
		return apperror.ErrNotYourTurn
	}

	if !IsLegalMove(game.Board, row, col) {
		return fmt.Errorf("%w: cell %d,%d", apperror.ErrInvalidMove, row, col)
	}

	if err := ApplyMove(game.Board, row, col, symbol); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	switch status := Evaluate(game.Board); status {
	case entity.StatusOngoing:
		game.CurrentTurn = toggleSymbol(symbol)
	default:
		game.Finish(status)
	}

	return nil
}

func toggleSymbol(currentSymbol string) string {
	if currentSymbol == entity.SymbolX {
		return entity.SymbolO
	}

	return entity.SymbolX
}
