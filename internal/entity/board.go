package entity

const (
	EmptyCell = ""
	SymbolX   = "X"
	SymbolO   = "O"
)

const (
	StatusOngoing = "ongoing"
	StatusXWins   = "x_wins"
	StatusOWins   = "o_wins"
	StatusDraw    = "draw"
)

// Board is an N-by-N grid where every cell is empty or holds a player symbol.
type Board [][]string

func NewBoard(size int) Board {
	board := make(Board, size)
	for row := range board {
		board[row] = make([]string, size)
	}

	return board
}

func (that Board) Size() int {
	return len(that)
}

func (that Board) InBounds(row, col int) bool {
	return row >= 0 && row < len(that) && col >= 0 && col < len(that)
}

func (that Board) IsFull() bool {
	for _, cells := range that {
		for _, cell := range cells {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that Board) Clone() Board {
	clone := make(Board, len(that))
	for row, cells := range that {
		clone[row] = make([]string, len(cells))
		copy(clone[row], cells)
	}

	return clone
}
