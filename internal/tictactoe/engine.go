package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/gridlock-backend/internal/apperror"
	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

// IsLegalMove - a move is legal iff the cell is on the board and empty.
func IsLegalMove(board entity.Board, row, col int) bool {
	return board.InBounds(row, col) && board[row][col] == entity.EmptyCell
}

// ApplyMove - sets the cell to the given symbol. Callers are expected to
// check legality first; the occupied/out-of-range checks are kept anyway so
// misuse can never corrupt a board.
func ApplyMove(board entity.Board, row, col int, symbol string) error {
	if !board.InBounds(row, col) {
		return fmt.Errorf("%w: cell %d,%d is out of range", apperror.ErrInvalidMove, row, col)
	}

	if board[row][col] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d,%d is occupied", apperror.ErrInvalidMove, row, col)
	}

	board[row][col] = symbol

	return nil
}

// Evaluate - inspects every row, column and both diagonals for a full line
// of one symbol. With no line, the game is a draw iff the board is full.
func Evaluate(board entity.Board) string {
	switch winningSymbol(board) {
	case entity.SymbolX:
		return entity.StatusXWins
	case entity.SymbolO:
		return entity.StatusOWins
	}

	if board.IsFull() {
		return entity.StatusDraw
	}

	return entity.StatusOngoing
}

func winningSymbol(board entity.Board) string {
	size := board.Size()

	for i := 0; i < size; i++ {
		if symbol := lineOwner(board, i, 0, 0, 1); symbol != entity.EmptyCell {
			return symbol
		}

		if symbol := lineOwner(board, 0, i, 1, 0); symbol != entity.EmptyCell {
			return symbol
		}
	}

	if symbol := lineOwner(board, 0, 0, 1, 1); symbol != entity.EmptyCell {
		return symbol
	}

	return lineOwner(board, 0, size-1, 1, -1)
}

// lineOwner - walks one line from (row,col) with the given step and returns
// the symbol occupying all of it, or an empty cell value.
func lineOwner(board entity.Board, row, col, rowStep, colStep int) string {
	first := board[row][col]
	if first == entity.EmptyCell {
		return entity.EmptyCell
	}

	for i := 1; i < board.Size(); i++ {
		if board[row+i*rowStep][col+i*colStep] != first {
			return entity.EmptyCell
		}
	}

	return first
}
