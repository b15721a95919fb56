package main

// LegalMoves enumerates every legal move for player, in the pinned order:
// cells adjacent to an opponent mark first, then cells legal only through
// the no-opponent-marks exception, row-major within each bucket. Callers
// must treat an empty result as a stalemate, not an error.
func LegalMoves(board Board, player PlayerColor, rules Rules) []Move {
	opponent := CellFromPlayer(otherPlayer(player))
	opponentExists := board.HasMarkOf(opponent)
	size := board.Size()
	adjacent := []Move{}
	open := []Move{}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y) != CellEmpty {
				continue
			}
			move := Move{X: x, Y: y}
			if rules.TouchesOpponent(board, move, player) {
				adjacent = append(adjacent, move)
				continue
			}
			if !opponentExists {
				open = append(open, move)
			}
		}
	}
	if len(adjacent) == 0 {
		return open
	}
	return append(adjacent, open...)
}

// FirstLegalMove is the engine's last-resort fallback.
func FirstLegalMove(board Board, player PlayerColor, rules Rules) (Move, bool) {
	moves := LegalMoves(board, player, rules)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[0], true
}
