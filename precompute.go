package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type PrecomputeEvent struct {
	Event      string `json:"event"`
	Board      string `json:"board,omitempty"`
	Move       *Move  `json:"move,omitempty"`
	Candidates int    `json:"candidates,omitempty"`
	Cached     int    `json:"cached,omitempty"`
	CacheSize  int    `json:"cache_size"`
	ElapsedMs  int64  `json:"elapsed_ms,omitempty"`
	UpdatedAt  int64  `json:"updated_at_ms"`
}

// Precomputer speculatively answers the question "if the human plays there,
// what do we reply?" for every currently-legal human move, storing results
// by hypothetical-board fingerprint. It runs one sweep after another on a
// single goroutine, abandoning the rest of a sweep as soon as the live
// board changes under it. Stale results are harmless: lookups re-key on the
// live board, so a superseded entry is just a wasted computation.
type Precomputer struct {
	controller   *GameController
	cache        *ResponseCache
	boardChanged atomic.Bool
	stop         chan struct{}
	done         chan struct{}
	closeOnce    sync.Once
	sweeps       atomic.Int64

	publishMu sync.Mutex
	publish   func(PrecomputeEvent)
}

func NewPrecomputer(controller *GameController, cache *ResponseCache) *Precomputer {
	return &Precomputer{
		controller: controller,
		cache:      cache,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (p *Precomputer) Start() {
	go p.run()
}

// NotifyBoardChanged raises the cancellation signal. The worker observes it
// between candidate evaluations and clears it before starting a fresh sweep;
// an in-flight single search runs to completion.
func (p *Precomputer) NotifyBoardChanged() {
	p.boardChanged.Store(true)
}

func (p *Precomputer) SetPublisher(publish func(PrecomputeEvent)) {
	p.publishMu.Lock()
	p.publish = publish
	p.publishMu.Unlock()
}

// Close stops the worker and joins it; no goroutine outlives the session.
func (p *Precomputer) Close() {
	p.closeOnce.Do(func() {
		close(p.stop)
	})
	<-p.done
}

func (p *Precomputer) Sweeps() int64 {
	return p.sweeps.Load()
}

func (p *Precomputer) run() {
	defer close(p.done)
	for {
		select {
		case <-p.stop:
			return
		default:
		}
		p.sweepOnce()
		p.sweeps.Add(1)
		interval := time.Duration(GetConfig().AiSweepIntervalMs) * time.Millisecond
		if interval <= 0 {
			interval = 100 * time.Millisecond
		}
		select {
		case <-p.stop:
			return
		case <-time.After(interval):
		}
	}
}

// sweepOnce runs one full pass over the legal human moves of a board
// snapshot. A panic inside a sweep is contained here: entries are purely
// speculative, so the sweep is dropped and retried rather than taking the
// session down.
func (p *Precomputer) sweepOnce() {
	defer func() {
		if recovered := recover(); recovered != nil {
			fmt.Printf("[ai:precompute] panic recovered in sweep: %v\n", recovered)
		}
	}()

	config := GetConfig()
	if !config.AiPrecomputeEnabled {
		return
	}
	snapshot, settings, status := p.controller.BoardSnapshot()
	if status != StatusRunning {
		return
	}
	rules := NewRules()
	humanMoves := LegalMoves(snapshot, settings.HumanPlayer, rules)
	if len(humanMoves) == 0 {
		return
	}

	start := time.Now()
	p.publishEvent(PrecomputeEvent{Event: "sweep_started", Candidates: len(humanMoves)})
	cached := 0
	interrupted := false
	for _, humanMove := range humanMoves {
		select {
		case <-p.stop:
			return
		default:
		}
		// Best-effort cancellation: checked between candidates only.
		if p.boardChanged.CompareAndSwap(true, false) {
			interrupted = true
			break
		}
		hypothetical := snapshot.Clone()
		hypothetical.Set(humanMove.X, humanMove.Y, settings.HumanCell())
		key := hypothetical.Fingerprint()

		searchSettings := SearchSettingsFromConfig(config, settings.AiPlayer())
		searchSettings.Stats = newSearchStats()
		reply, ok := FindBestResponse(hypothetical, rules, searchSettings)
		if !ok {
			continue
		}
		origin := "search"
		if searchSettings.Stats.FastPath != "" {
			origin = "fast:" + searchSettings.Stats.FastPath
		}
		p.cache.Store(key, ResponseEntry{
			Move:   reply,
			Depth:  searchSettings.Depth,
			Origin: origin,
		})
		cached++
		p.publishEvent(PrecomputeEvent{
			Event: "board_cached",
			Board: key.Short(),
			Move:  &Move{X: reply.X, Y: reply.Y},
		})
	}

	elapsed := time.Since(start)
	if interrupted {
		p.publishEvent(PrecomputeEvent{Event: "sweep_interrupted", Cached: cached, ElapsedMs: elapsed.Milliseconds()})
		if config.AiLogPrecomputeSweep {
			fmt.Printf("[ai:precompute] sweep interrupted after %d/%d candidates in %dms\n",
				cached, len(humanMoves), elapsed.Milliseconds())
		}
		return
	}
	p.publishEvent(PrecomputeEvent{Event: "sweep_complete", Cached: cached, ElapsedMs: elapsed.Milliseconds()})
	if config.AiLogPrecomputeSweep {
		fmt.Printf("[ai:precompute] sweep cached %d/%d replies in %dms (cache_size=%d)\n",
			cached, len(humanMoves), elapsed.Milliseconds(), p.cache.Len())
	}
}

func (p *Precomputer) publishEvent(event PrecomputeEvent) {
	p.publishMu.Lock()
	publish := p.publish
	p.publishMu.Unlock()
	if publish == nil {
		return
	}
	event.CacheSize = p.cache.Len()
	event.UpdatedAt = time.Now().UnixMilli()
	publish(event)
}
