package main

import "fmt"

// Rules is stateless; board size and win length are fixed constants.
type Rules struct{}

func NewRules() Rules {
	return Rules{}
}

var runDirections = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// IsLegal applies the engagement rule: a move is legal on an empty target
// cell when the mover's opponent has no marks yet, or when the cell touches
// an opponent mark (Chebyshev distance 1).
func (r Rules) IsLegal(board Board, move Move, player PlayerColor) (bool, string) {
	if !move.IsValid() {
		return false, "out of bounds"
	}
	if !board.IsEmpty(move.X, move.Y) {
		return false, "occupied"
	}
	opponent := CellFromPlayer(otherPlayer(player))
	if !board.HasMarkOf(opponent) {
		return true, ""
	}
	if r.TouchesOpponent(board, move, player) {
		return true, ""
	}
	return false, "must be adjacent to an opponent mark"
}

// TouchesOpponent reports whether the move's 3x3 neighborhood holds at least
// one mark of the mover's opponent. Adjacency is checked against opponent
// marks only, never the mover's own.
func (r Rules) TouchesOpponent(board Board, move Move, player PlayerColor) bool {
	opponent := CellFromPlayer(otherPlayer(player))
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x := move.X + dx
			y := move.Y + dy
			if board.InBounds(x, y) && board.At(x, y) == opponent {
				return true
			}
		}
	}
	return false
}

// Winner scans all four direction families exhaustively and returns the
// first player found holding a six-run, in row-major anchor order.
func (r Rules) Winner(board Board) (PlayerColor, bool) {
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := board.At(x, y)
			if cell == CellEmpty {
				continue
			}
			for i := 0; i < 4; i++ {
				dx := runDirections[i][0]
				dy := runDirections[i][1]
				// Only count runs from their first cell to avoid
				// rescanning the same run per member.
				if board.InBounds(x-dx, y-dy) && board.At(x-dx, y-dy) == cell {
					continue
				}
				count := 1 + r.countDirection(board, Move{X: x, Y: y}, dx, dy)
				if count >= WinLength {
					player, err := PlayerFromCell(cell)
					if err != nil {
						continue
					}
					return player, true
				}
			}
		}
	}
	return PlayerX, false
}

func (r Rules) IsWinningMove(board Board, move Move) bool {
	if !move.IsValid() {
		return false
	}
	target := board.At(move.X, move.Y)
	if target == CellEmpty {
		return false
	}
	for i := 0; i < 4; i++ {
		dx := runDirections[i][0]
		dy := runDirections[i][1]
		count := 1
		count += r.countDirection(board, move, dx, dy)
		count += r.countDirection(board, move, -dx, -dy)
		if count >= WinLength {
			return true
		}
	}
	return false
}

func (r Rules) IsDraw(board Board) bool {
	if board.IsFull() {
		_, won := r.Winner(board)
		return !won
	}
	return false
}

// WouldCompleteRun reports whether placing cell at move would produce a run
// of at least length through that cell. The placement is transient.
func (r Rules) WouldCompleteRun(board Board, move Move, cell Cell, length int) bool {
	if !board.IsEmpty(move.X, move.Y) {
		return false
	}
	board.Set(move.X, move.Y, cell)
	completes := false
	for i := 0; i < 4; i++ {
		dx := runDirections[i][0]
		dy := runDirections[i][1]
		count := 1
		count += r.countDirection(board, move, dx, dy)
		count += r.countDirection(board, move, -dx, -dy)
		if count >= length {
			completes = true
			break
		}
	}
	board.Remove(move.X, move.Y)
	return completes
}

func (r Rules) countDirection(board Board, start Move, dx, dy int) int {
	target := board.At(start.X, start.Y)
	x := start.X + dx
	y := start.Y + dy
	count := 0
	for board.InBounds(x, y) && board.At(x, y) == target {
		count++
		x += dx
		y += dy
	}
	return count
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{size=%d, win=%d}", BoardSize, WinLength)
}
