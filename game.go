package main

import (
	"fmt"
	"time"
)

// Game holds the authoritative session state. It is not safe for concurrent
// use on its own; the GameController serializes every entry point.
type Game struct {
	settings  GameSettings
	rules     Rules
	state     GameState
	history   MoveHistory
	turnStart time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.rules = NewRules()
	g.state = DefaultGameState(settings)
	g.history.Clear()
	g.turnStart = time.Now()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
		fmt.Printf("[game] started %s, human=%s, to_move=%s\n",
			g.rules, g.settings.HumanPlayer, g.state.ToMove)
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove validates and applies one move for player. On failure the
// board is untouched and the reason is returned; illegal input is never
// fatal.
func (g *Game) TryApplyMove(move Move, player PlayerColor, fromCache bool) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	if player != g.state.ToMove {
		return false, "not your turn"
	}
	ok, reason := g.rules.IsLegal(g.state.Board, move, player)
	if !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	cell := CellFromPlayer(player)
	g.state.Board.Set(move.X, move.Y, cell)
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.history.Push(HistoryEntry{
		Move:      move,
		Player:    player,
		ElapsedMs: elapsedMs,
		IsAi:      player == g.settings.AiPlayer(),
		FromCache: fromCache,
	})

	if g.rules.IsWinningMove(g.state.Board, move) {
		if player == PlayerX {
			g.state.Status = StatusXWon
		} else {
			g.state.Status = StatusOWon
		}
		return true, ""
	}
	if g.rules.IsDraw(g.state.Board) {
		g.state.Status = StatusDraw
		return true, ""
	}
	g.state.ToMove = otherPlayer(player)
	g.turnStart = time.Now()
	return true, ""
}
