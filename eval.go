package main

import "math"

// winValue is the score of a confirmed win for the evaluated side. The
// iterative deepening driver stops as soon as a root result reaches it.
const winValue = math.MaxInt32

// QueenGuardHeuristic scores a position for a given side: pressure on the two
// queens dominates, with development and a beetle parked on the enemy queen
// as secondary terms. Weights come from the live config.
type QueenGuardHeuristic struct {
	weights HeuristicConfig
}

func NewQueenGuardHeuristic(weights HeuristicConfig) *QueenGuardHeuristic {
	return &QueenGuardHeuristic{weights: resolvedHeuristicConfig(weights)}
}

func (h *QueenGuardHeuristic) Value(state *GameState, pov PlayerColor) int {
	opponent := otherPlayer(pov)
	ownDown := queenBuried(state, pov)
	oppDown := queenBuried(state, opponent)
	switch {
	case ownDown && oppDown:
		return 0
	case oppDown:
		return winValue
	case ownDown:
		return -winValue
	}

	score := 0
	score += h.weights.QueenPressure * (queenNeighborCount(state, opponent) - queenNeighborCount(state, pov))
	score += h.weights.Development * (state.PlacedCount[pov] - state.PlacedCount[opponent])
	if beetleOnQueen(state, pov) {
		score += h.weights.BeetleOnQueen
	}
	if beetleOnQueen(state, opponent) {
		score -= h.weights.BeetleOnQueen
	}
	return score
}

func queenBuried(state *GameState, player PlayerColor) bool {
	pos, ok := state.QueenPosition(player)
	if !ok {
		return false
	}
	return state.Board.OccupiedNeighbors(pos) == 6
}

func queenNeighborCount(state *GameState, player PlayerColor) int {
	pos, ok := state.QueenPosition(player)
	if !ok {
		return 0
	}
	return state.Board.OccupiedNeighbors(pos)
}

// beetleOnQueen reports whether one of player's pieces sits on top of the
// enemy queen's stack.
func beetleOnQueen(state *GameState, player PlayerColor) bool {
	pos, ok := state.QueenPosition(otherPlayer(player))
	if !ok {
		return false
	}
	top, _ := state.Board.Top(pos)
	return top != QueenOf(otherPlayer(player)) && top.Owner() == player
}
