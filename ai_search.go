package main

import (
	"fmt"
	"math"
	"time"
)

type SearchSettings struct {
	Depth      int
	AiPlayer   PlayerColor
	Heuristics HeuristicConfig
	Stats      *SearchStats
}

type SearchStats struct {
	Start    time.Time
	Nodes    int64
	Cutoffs  int64
	FastPath string
}

func newSearchStats() *SearchStats {
	return &SearchStats{Start: time.Now()}
}

func SearchSettingsFromConfig(config Config, aiPlayer PlayerColor) SearchSettings {
	depth := config.AiDepth
	if depth < 1 {
		depth = 1
	}
	return SearchSettings{
		Depth:      depth,
		AiPlayer:   aiPlayer,
		Heuristics: resolvedHeuristicConfig(config),
	}
}

// FindBestResponse picks the AI's move for the given position. The board is
// cloned on entry, so the search never touches the caller's copy even while
// it mutates and undoes moves during recursion.
//
// Threat fast paths run in strict priority order before any deep search:
// take an immediate win, block an immediate loss, block a developing five,
// complete an own five, block a developing four. Only then does the bounded
// minimax run. Ties everywhere resolve to the first move in generator
// order, so the result is deterministic for a fixed position.
func FindBestResponse(board Board, rules Rules, settings SearchSettings) (Move, bool) {
	board = board.Clone()
	aiCell := CellFromPlayer(settings.AiPlayer)
	humanCell := otherCell(aiCell)
	candidates := LegalMoves(board, settings.AiPlayer, rules)
	if len(candidates) == 0 {
		return Move{}, false
	}

	fastPaths := []struct {
		name   string
		cell   Cell
		length int
	}{
		{"win", aiCell, WinLength},
		{"block_win", humanCell, WinLength},
		{"block_five", humanCell, 5},
		{"make_five", aiCell, 5},
		{"block_four", humanCell, 4},
	}
	for _, path := range fastPaths {
		for _, move := range candidates {
			if rules.WouldCompleteRun(board, move, path.cell, path.length) {
				if settings.Stats != nil {
					settings.Stats.FastPath = path.name
				}
				return move, true
			}
		}
	}

	score, move, ok := minimax(&board, rules, settings, settings.Depth, math.Inf(-1), math.Inf(1), true)
	if !ok {
		// Unreachable while candidates is non-empty, but the engine
		// must never leave the AI without a move.
		return candidates[0], true
	}
	if settings.Stats != nil && GetConfig().AiLogSearchStats {
		logSearchStats(settings, score, move)
	}
	return move, true
}

// minimax runs bounded-depth alpha-beta over the private board, mutating and
// undoing moves in place. The maximizing side is always the AI.
func minimax(board *Board, rules Rules, settings SearchSettings, depth int, alpha, beta float64, maximizing bool) (float64, Move, bool) {
	if settings.Stats != nil {
		settings.Stats.Nodes++
	}
	if winner, won := rules.Winner(*board); won {
		if winner == settings.AiPlayer {
			return settings.Heuristics.WinScore, Move{}, false
		}
		return -settings.Heuristics.WinScore, Move{}, false
	}
	if depth == 0 {
		return EvaluateBoard(*board, CellFromPlayer(settings.AiPlayer), rules, settings.Heuristics), Move{}, false
	}

	player := settings.AiPlayer
	if !maximizing {
		player = otherPlayer(settings.AiPlayer)
	}
	moves := LegalMoves(*board, player, rules)
	if len(moves) == 0 {
		// Exhausted subtree counts as a draw, not an error.
		return 0, Move{}, false
	}

	cell := CellFromPlayer(player)
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	bestMove := Move{}
	haveMove := false
	for _, move := range moves {
		board.Set(move.X, move.Y, cell)
		score, _, _ := minimax(board, rules, settings, depth-1, alpha, beta, !maximizing)
		board.Remove(move.X, move.Y)
		if maximizing {
			// Strict comparison: ties keep the first move seen.
			if score > best || !haveMove {
				best = score
				bestMove = move
				haveMove = true
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score < best || !haveMove {
				best = score
				bestMove = move
				haveMove = true
			}
			if score < beta {
				beta = score
			}
		}
		if beta <= alpha {
			if settings.Stats != nil {
				settings.Stats.Cutoffs++
			}
			break
		}
	}
	return best, bestMove, haveMove
}

func logSearchStats(settings SearchSettings, score float64, move Move) {
	stats := settings.Stats
	elapsed := time.Duration(0)
	if !stats.Start.IsZero() {
		elapsed = time.Since(stats.Start)
	}
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	fmt.Printf("[ai:search] t=%dms depth=%d nodes=%d nps=%.0f cutoffs=%d score=%.1f move=(%d,%d)\n",
		elapsed.Milliseconds(), settings.Depth, stats.Nodes, nps, stats.Cutoffs, score, move.X, move.Y)
}
