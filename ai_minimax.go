package main

import (
	"math"
	"math/rand"
	"time"
)

// SearchRules is the slice of the rules engine the search needs: ordered
// move generation with optional hints, reversible in-place apply/undo, a
// position key for the transposition table, and terminal detection.
type SearchRules interface {
	GenerateMoves(state *GameState, preferred, killer1, killer2 Move) []Move
	ApplyMove(state *GameState, move Move)
	UndoMove(state *GameState, move Move)
	PositionKey(state *GameState) uint64
	IsGameOver(state *GameState, depth int) bool
}

// BoardValueHeuristic scores a position from the point of view of the given
// player. A return of winValue means a confirmed win for that player.
type BoardValueHeuristic interface {
	Value(state *GameState, pov PlayerColor) int
}

type SearchPhase int

const (
	PhaseIdle SearchPhase = iota
	PhaseDeepening
	PhaseDone
)

// MinimaxAI is an iteratively deepened alpha-beta searcher backed by a
// transposition table, with a killer-move buffer per remaining-depth index.
// All mutable search state (table, killers, rng, clock) is owned by the
// instance, so independent engines never share anything.
type MinimaxAI struct {
	name        string
	heuristic   BoardValueHeuristic
	searchDepth int
	maxTime     time.Duration
	rng         *rand.Rand
	now         func() time.Time

	table   *TranspositionTable
	killers []*LimitedBuffer
	stats   *SearchStats

	start     time.Time
	maximizer PlayerColor
	phase     SearchPhase
}

func NewMinimaxAI(name string, heuristic BoardValueHeuristic, depth int, maxTime time.Duration) *MinimaxAI {
	ai := &MinimaxAI{
		name:        name,
		heuristic:   heuristic,
		searchDepth: depth,
		maxTime:     maxTime,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
		table:       NewTranspositionTable(),
		killers:     make([]*LimitedBuffer, depth),
		stats:       &SearchStats{},
	}
	for i := range ai.killers {
		ai.killers[i] = NewLimitedBuffer(2)
	}
	return ai
}

func (a *MinimaxAI) Name() string {
	return a.name
}

// Copy returns a fresh engine with the same configuration and empty caches.
func (a *MinimaxAI) Copy() *MinimaxAI {
	return NewMinimaxAI(a.name, a.heuristic, a.searchDepth, a.maxTime)
}

// MaintainsStandardPosition reports that the engine expects the board in its
// standard orientation; callers may skip any normalization step.
func (a *MinimaxAI) MaintainsStandardPosition() bool {
	return true
}

func (a *MinimaxAI) Stats() *SearchStats {
	return a.stats
}

func (a *MinimaxAI) CacheSize() int {
	return a.table.Len()
}

func (a *MinimaxAI) Phase() SearchPhase {
	return a.phase
}

// ChooseMove runs the iterative deepening loop: depth 0, 1, 2, ... until the
// configured maximum or the time budget runs out, keeping the best (value,
// move) pair across depths. Equal values are adopted on a coin flip, and a
// confirmed win returns immediately. The boolean is false when no move was
// ever established (budget exhausted before depth 0 produced anything the
// driver adopted).
func (a *MinimaxAI) ChooseMove(state *GameState, rules SearchRules) (Move, bool) {
	a.start = a.now()
	a.maximizer = state.ToMove
	a.stats = &SearchStats{Start: a.start}
	a.phase = PhaseDeepening
	for _, buffer := range a.killers {
		buffer.Clear()
	}

	bestValue := math.MinInt32
	var bestMove Move
	haveBest := false

	for depth := 0; depth <= a.searchDepth && a.now().Sub(a.start) < a.maxTime; depth++ {
		depthStart := a.now()
		value, move := a.runMinMax(state, rules, depth)
		a.stats.CompletedDepths++
		a.stats.DepthDurations = append(a.stats.DepthDurations, a.now().Sub(depthStart))
		if value > bestValue || (value == bestValue && a.rng.Intn(2) == 0) {
			bestValue = value
			bestMove = move
			haveBest = true
			if bestValue == winValue {
				a.phase = PhaseDone
				return bestMove, true
			}
		}
	}
	a.phase = PhaseDone
	return bestMove, haveBest
}

// runMinMax is the root pass at a fixed depth. Root siblings are searched
// with alpha seeded from the best value found so far rather than -infinity,
// which narrows the window early; ties are again broken by coin flip.
func (a *MinimaxAI) runMinMax(state *GameState, rules SearchRules, depth int) (int, Move) {
	moves := rules.GenerateMoves(state, NoMove, NoMove, NoMove)
	bestValue := math.MinInt32
	bestMove := PassMove
	for _, move := range moves {
		rules.ApplyMove(state, move)
		value := a.alphabeta(state, rules, depth-1, bestValue, math.MaxInt32, false)
		if value > bestValue || (value == bestValue && a.rng.Intn(2) == 0) {
			bestValue = value
			bestMove = move
		}
		rules.UndoMove(state, move)
	}
	return bestValue, bestMove
}

func (a *MinimaxAI) alphabeta(state *GameState, rules SearchRules, depth, alpha, beta int, maximizing bool) int {
	originalAlpha := alpha
	originalBeta := beta
	bestMove := PassMove
	a.stats.Nodes++

	key := rules.PositionKey(state)
	if entry, ok := a.table.Lookup(key); ok && entry.Depth >= depth {
		a.stats.CacheHit()
		bestMove = entry.BestMove
		switch entry.Flag {
		case TTExact:
			return entry.Value
		case TTLower:
			if entry.Value > alpha {
				alpha = entry.Value
			}
		case TTUpper:
			if entry.Value < beta {
				beta = entry.Value
			}
		}
		if alpha >= beta {
			return entry.Value
		}
	}

	var value int
	if rules.IsGameOver(state, depth) || depth <= 0 || a.now().Sub(a.start) > a.maxTime {
		value = a.heuristic.Value(state, a.maximizer)
	} else {
		killer1, killer2 := NoMove, NoMove
		if killers := a.killers[depth].Moves(); len(killers) > 0 {
			killer1 = killers[0]
			if len(killers) > 1 {
				killer2 = killers[1]
			}
		}
		moves := rules.GenerateMoves(state, bestMove, killer1, killer2)
		movesEvaluated := 0

		if maximizing {
			for _, move := range moves {
				movesEvaluated++
				bestMove = move
				rules.ApplyMove(state, move)
				value = a.alphabeta(state, rules, depth-1, alpha, beta, false)
				if value > alpha {
					alpha = value
				}
				rules.UndoMove(state, move)
				if beta <= alpha {
					a.stats.CutoffAfter(movesEvaluated)
					a.killers[depth].Add(move)
					break
				}
			}
			value = alpha
		} else {
			for _, move := range moves {
				movesEvaluated++
				bestMove = move
				rules.ApplyMove(state, move)
				value = a.alphabeta(state, rules, depth-1, alpha, beta, true)
				if value < beta {
					beta = value
				}
				rules.UndoMove(state, move)
				if beta <= alpha {
					a.stats.CutoffAfter(movesEvaluated)
					a.killers[depth].Add(move)
					break
				}
			}
			value = beta
		}
	}

	// Classify against the pre-adjustment window. The lower/upper pairing
	// here mirrors the lookup side above; the two must stay consistent.
	switch {
	case value <= originalAlpha:
		a.table.Store(key, value, depth, TTLower, bestMove)
	case value >= originalBeta:
		a.table.Store(key, value, depth, TTUpper, bestMove)
	default:
		a.table.Store(key, value, depth, TTExact, bestMove)
	}
	return value
}
