package main

const centerOffset = float64(BoardSize-1) / 2.0

// EvaluateBoard scores a position from the AI's perspective. Positive favors
// the AI. The score combines three terms:
//
//  1. per empty cell, +/-WinScore when placing a mark there would complete a
//     six-run for the AI / the human;
//  2. per empty cell, a center-proximity term CenterWeight*(6-|dy|-|dx|);
//  3. optionally, counts of partial runs of lengths 3..5 for both players,
//     each weighted by length squared, the human's weighted by OpponentBias.
//
// This ranks leaf positions at the search's depth cutoff; it makes no
// optimality claim.
func EvaluateBoard(board Board, aiCell Cell, rules Rules, heuristics HeuristicConfig) float64 {
	humanCell := otherCell(aiCell)
	score := 0.0
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y) != CellEmpty {
				continue
			}
			move := Move{X: x, Y: y}
			if rules.WouldCompleteRun(board, move, humanCell, WinLength) {
				score -= heuristics.WinScore
			}
			if rules.WouldCompleteRun(board, move, aiCell, WinLength) {
				score += heuristics.WinScore
			}
			score += heuristics.CenterWeight * (6.0 - absFloat(float64(y)-centerOffset) - absFloat(float64(x)-centerOffset))
		}
	}
	if heuristics.EnableSequenceScan {
		for length := 3; length <= 5; length++ {
			weight := float64(length*length) * heuristics.SequenceWeight
			score += weight * float64(countRuns(board, aiCell, length))
			score -= weight * heuristics.OpponentBias * float64(countRuns(board, humanCell, length))
		}
	}
	return score
}

// countRuns counts every window of exactly `length` consecutive same-mark
// cells across rows, columns and both diagonals.
func countRuns(board Board, cell Cell, length int) int {
	size := board.Size()
	count := 0
	for y := 0; y < size; y++ {
		for x := 0; x+length <= size; x++ {
			if windowFilled(board, x, y, 1, 0, length, cell) {
				count++
			}
		}
	}
	for y := 0; y+length <= size; y++ {
		for x := 0; x < size; x++ {
			if windowFilled(board, x, y, 0, 1, length, cell) {
				count++
			}
		}
	}
	for y := 0; y+length <= size; y++ {
		for x := 0; x+length <= size; x++ {
			if windowFilled(board, x, y, 1, 1, length, cell) {
				count++
			}
			if windowFilled(board, x+length-1, y, -1, 1, length, cell) {
				count++
			}
		}
	}
	return count
}

func windowFilled(board Board, x, y, dx, dy, length int, cell Cell) bool {
	for k := 0; k < length; k++ {
		if board.At(x+k*dx, y+k*dy) != cell {
			return false
		}
	}
	return true
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
