package main

import "sync"

// GameController is the coordinator: it owns the live board behind a mutex,
// is the sole write path into it, and mediates between the foreground move
// path and the background precompute worker. Critical sections stay short;
// no lock is ever held across a search.
type GameController struct {
	mu          sync.Mutex
	game        Game
	cache       *ResponseCache
	precomputer *Precomputer
}

func NewGameController(settings GameSettings) *GameController {
	return &GameController{
		game:  NewGame(settings),
		cache: NewResponseCache(GetConfig().AiCacheLimit),
	}
}

// StartPrecompute launches the background worker. Call Close to stop and
// join it.
func (gc *GameController) StartPrecompute() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.precomputer != nil {
		return
	}
	gc.precomputer = NewPrecomputer(gc, gc.cache)
	gc.precomputer.Start()
}

func (gc *GameController) SetPrecomputePublisher(publish func(PrecomputeEvent)) {
	gc.mu.Lock()
	pre := gc.precomputer
	gc.mu.Unlock()
	if pre != nil {
		pre.SetPublisher(publish)
	}
}

func (gc *GameController) Close() {
	gc.mu.Lock()
	pre := gc.precomputer
	gc.precomputer = nil
	gc.mu.Unlock()
	if pre != nil {
		pre.Close()
	}
}

func (gc *GameController) Cache() *ResponseCache {
	return gc.cache
}

// PrecomputeSweeps reports completed background sweeps, zero when the worker
// was never started.
func (gc *GameController) PrecomputeSweeps() int64 {
	gc.mu.Lock()
	pre := gc.precomputer
	gc.mu.Unlock()
	if pre == nil {
		return 0
	}
	return pre.Sweeps()
}

// ApplyMove is the only external write path to the live board. A successful
// application raises the board-changed signal before the lock is released,
// so the worker can never cache against a half-applied move.
func (gc *GameController) ApplyMove(move Move, player PlayerColor) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	applied, reason := gc.game.TryApplyMove(move, player, false)
	if applied && gc.precomputer != nil {
		gc.precomputer.NotifyBoardChanged()
	}
	return applied, reason
}

func (gc *GameController) ApplyHumanMove(move Move) (bool, string) {
	gc.mu.Lock()
	human := gc.game.Settings().HumanPlayer
	gc.mu.Unlock()
	return gc.ApplyMove(move, human)
}

// GetAIMove returns the AI's reply for the current live board: the
// precomputed entry when one exists for the board's fingerprint, otherwise a
// synchronous search over a snapshot. The second result is false only on a
// board with no legal AI moves (stalemate).
func (gc *GameController) GetAIMove() (Move, bool) {
	move, _, ok := gc.aiMove()
	return move, ok
}

// PlayAIMove asks the engine for its move and applies it in one step.
func (gc *GameController) PlayAIMove() (Move, bool, string) {
	move, fromCache, ok := gc.aiMove()
	if !ok {
		return Move{}, false, "no legal moves"
	}
	gc.mu.Lock()
	defer gc.mu.Unlock()
	aiPlayer := gc.game.Settings().AiPlayer()
	applied, reason := gc.game.TryApplyMove(move, aiPlayer, fromCache)
	if !applied {
		return Move{}, false, reason
	}
	if gc.precomputer != nil {
		gc.precomputer.NotifyBoardChanged()
	}
	return move, true, ""
}

func (gc *GameController) aiMove() (Move, bool, bool) {
	gc.mu.Lock()
	settings := gc.game.Settings()
	rules := gc.game.Rules()
	aiPlayer := settings.AiPlayer()
	key := gc.game.state.Board.Fingerprint()
	if entry, ok := gc.cache.Probe(key); ok {
		if legal, _ := rules.IsLegal(gc.game.state.Board, entry.Move, aiPlayer); legal {
			gc.mu.Unlock()
			gc.cache.MarkServed(key)
			return entry.Move, true, true
		}
	}
	snapshot := gc.game.state.Board.Clone()
	gc.mu.Unlock()

	searchSettings := SearchSettingsFromConfig(GetConfig(), aiPlayer)
	searchSettings.Stats = newSearchStats()
	if move, ok := FindBestResponse(snapshot, rules, searchSettings); ok {
		return move, false, true
	}
	if move, ok := FirstLegalMove(snapshot, aiPlayer, rules); ok {
		return move, false, true
	}
	return Move{}, false, false
}

// BoardSnapshot hands the worker a value copy of the live board under a
// brief critical section.
func (gc *GameController) BoardSnapshot() (Board, GameSettings, GameStatus) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.state.Board.Clone(), gc.game.Settings(), gc.game.state.Status
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) Rules() Rules {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Rules()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	history := gc.game.History()
	if history.Size() == 0 {
		return HistoryEntry{}, false
	}
	entries := history.All()
	return entries[len(entries)-1], true
}

func (gc *GameController) TurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
	if gc.precomputer != nil {
		gc.precomputer.NotifyBoardChanged()
	}
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	if gc.precomputer != nil {
		gc.precomputer.NotifyBoardChanged()
	}
}
