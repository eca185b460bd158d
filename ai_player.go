package main

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// AIPlayer owns one MinimaxAI engine built from the live config. A config
// change swaps in a fresh engine (fresh transposition table and killers);
// the background worker lets Tick poll for a result without blocking.
type AIPlayer struct {
	mu         sync.Mutex
	engine     *MinimaxAI
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	readyMove  Move
	readyOk    bool
	lastDepth  atomic.Int64
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{engine: buildEngineFromConfig(GetConfig())}
}

func buildEngineFromConfig(config Config) *MinimaxAI {
	heuristic := NewQueenGuardHeuristic(config.Heuristics)
	budget := time.Duration(config.AiTimeBudgetMs) * time.Millisecond
	engine := NewMinimaxAI(config.AiName, heuristic, config.AiDepth, budget)
	if config.AiSeed != 0 {
		engine.rng = rand.New(rand.NewSource(config.AiSeed))
	}
	return engine
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) ChooseMove(state GameState, rules Rules) (Move, bool) {
	a.mu.Lock()
	engine := a.engine
	a.mu.Unlock()
	// The engine keeps the standard orientation, so the state is handed
	// over without normalization.
	_ = engine.MaintainsStandardPosition()
	stateCopy := state.Clone()
	move, ok := engine.ChooseMove(&stateCopy, rules)
	a.lastDepth.Store(int64(engine.Stats().CompletedDepths))
	if GetConfig().AiLogSearchStats {
		logSearchStats(engine.Name(), engine.Stats(), engine)
	}
	return move, ok
}

// LastSearchDepth reports how many depths the most recent search completed.
func (a *AIPlayer) LastSearchDepth() int {
	return int(a.lastDepth.Load())
}

// StartThinking launches a search on a snapshot of the state. The result is
// picked up later via HasMoveReady/TakeMove.
func (a *AIPlayer) StartThinking(state GameState, rules Rules) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)

	stateCopy := state.Clone()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		move, ok := a.ChooseMove(stateCopy, rules)
		a.mu.Lock()
		a.readyMove = move
		a.readyOk = ok
		a.mu.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() (Move, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.moveReady.Store(false)
	return a.readyMove, a.readyOk
}

func (a *AIPlayer) CacheSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.CacheSize()
}

func (a *AIPlayer) MaintainsStandardPosition() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.MaintainsStandardPosition()
}

// ResetForConfigChange rebuilds the engine so depth, budget, seed and
// heuristic weights take effect and cached state from the old configuration
// is dropped.
func (a *AIPlayer) ResetForConfigChange() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine = buildEngineFromConfig(GetConfig())
	a.moveReady.Store(false)
}
