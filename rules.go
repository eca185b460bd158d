package main

import "sort"

// NoMove is the absent-hint sentinel handed to GenerateMoves when a caller
// has no preferred or killer move to suggest. It never matches a legal move.
var NoMove = Move{Piece: NoPiece}

type Rules struct {
	settings GameSettings
}

func NewRules(settings GameSettings) Rules {
	return Rules{settings: settings}
}

// GenerateMoves returns every legal move for the side to move, with the
// preferred move (usually from the transposition table) first, then up to two
// killer moves, then the rest in natural order. Hints that are stale or
// illegal in this position are silently ignored. When the player has no legal
// placement or movement the single pass move is returned.
func (r Rules) GenerateMoves(state *GameState, preferred, killer1, killer2 Move) []Move {
	moves := r.legalMoves(state)
	hints := [3]Move{preferred, killer1, killer2}
	ordered := make([]Move, 0, len(moves))
	promoted := make(map[Move]bool, 3)
	for _, hint := range hints {
		if hint == NoMove || promoted[hint] {
			continue
		}
		for _, move := range moves {
			if move == hint {
				ordered = append(ordered, hint)
				promoted[hint] = true
				break
			}
		}
	}
	for _, move := range moves {
		if !promoted[move] {
			ordered = append(ordered, move)
		}
	}
	return ordered
}

func (r Rules) IsLegal(state *GameState, move Move, player PlayerColor) (bool, string) {
	if player != state.ToMove {
		return false, "not your turn"
	}
	for _, legal := range r.legalMoves(state) {
		if legal == move {
			return true, ""
		}
	}
	if move.Pass {
		return false, "pass not allowed while moves remain"
	}
	return false, "illegal move"
}

func (r Rules) legalMoves(state *GameState) []Move {
	player := state.ToMove
	moves := r.placementMoves(state, player)
	queenForced := state.PlacedCount[player] == 3 && !state.QueenPlaced(player)
	if state.QueenPlaced(player) && !queenForced {
		moves = append(moves, r.movementMoves(state, player)...)
	}
	if len(moves) == 0 {
		return []Move{PassMove}
	}
	return moves
}

func (r Rules) placementMoves(state *GameState, player PlayerColor) []Move {
	pieces := r.placeablePieces(state, player)
	if len(pieces) == 0 {
		return nil
	}
	cells := r.placementCells(state, player)
	sortHexes(cells)
	moves := make([]Move, 0, len(pieces)*len(cells))
	for _, piece := range pieces {
		for _, cell := range cells {
			moves = append(moves, PlaceMove(piece, cell))
		}
	}
	return moves
}

// placeablePieces picks one in-hand piece per bug type (identical pieces
// would otherwise produce duplicate moves). Queen-by-fourth-turn and the
// tournament opening rule restrict the choice.
func (r Rules) placeablePieces(state *GameState, player PlayerColor) []PieceID {
	queen := QueenOf(player)
	if state.PlacedCount[player] == 3 && state.InHand[queen] {
		return []PieceID{queen}
	}
	var pieces []PieceID
	seen := [5]bool{}
	base := int(QueenOf(player))
	for i := 0; i < piecesPerPlayer; i++ {
		piece := PieceID(base + i)
		if !state.InHand[piece] || seen[piece.Bug()] {
			continue
		}
		if piece.Bug() == BugQueen && r.settings.TournamentRule && state.PlacedCount[player] == 0 {
			continue
		}
		seen[piece.Bug()] = true
		pieces = append(pieces, piece)
	}
	return pieces
}

func (r Rules) placementCells(state *GameState, player PlayerColor) []Hex {
	if state.Board.CountCells() == 0 {
		return []Hex{{Q: 0, R: 0}}
	}
	if state.Board.CountCells() == 1 {
		// Second placement of the game may touch the opponent.
		var first Hex
		for hex := range state.Board.stacks {
			first = hex
		}
		neighbors := first.Neighbors()
		return neighbors[:]
	}
	seen := make(map[Hex]bool)
	var cells []Hex
	for hex, stack := range state.Board.stacks {
		if stack[len(stack)-1].Owner() != player {
			continue
		}
		for i := 0; i < 6; i++ {
			candidate := hex.Neighbor(i)
			if seen[candidate] || state.Board.Occupied(candidate) {
				continue
			}
			seen[candidate] = true
			if _, nearOpponent := state.Board.NeighborOwners(candidate, player); nearOpponent {
				continue
			}
			cells = append(cells, candidate)
		}
	}
	return cells
}

func (r Rules) movementMoves(state *GameState, player PlayerColor) []Move {
	var moves []Move
	for hex, stack := range state.Board.stacks {
		piece := stack[len(stack)-1]
		if piece.Owner() != player {
			continue
		}
		if len(stack) == 1 && !state.Board.ConnectedWithout(hex) {
			continue // one-hive rule pins this piece
		}
		var targets []Hex
		switch piece.Bug() {
		case BugQueen:
			targets = r.queenTargets(&state.Board, hex)
		case BugBeetle:
			targets = r.beetleTargets(&state.Board, hex)
		case BugGrasshopper:
			targets = r.grasshopperTargets(&state.Board, hex)
		case BugSpider:
			targets = r.spiderTargets(&state.Board, hex)
		case BugAnt:
			targets = r.antTargets(&state.Board, hex)
		}
		for _, to := range targets {
			moves = append(moves, SlideMove(piece, hex, to))
		}
	}
	// Board iteration order is randomized by the map; pin the natural order
	// so searches with a fixed seed stay reproducible.
	sort.Slice(moves, func(i, j int) bool { return moveLess(moves[i], moves[j]) })
	return moves
}

func sortHexes(cells []Hex) {
	sort.Slice(cells, func(i, j int) bool { return hexLess(cells[i], cells[j]) })
}

func hexLess(a, b Hex) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

func moveLess(a, b Move) bool {
	if a.Piece != b.Piece {
		return a.Piece < b.Piece
	}
	if a.From != b.From {
		return hexLess(a.From, b.From)
	}
	return hexLess(a.To, b.To)
}

func (r Rules) queenTargets(board *Board, from Hex) []Hex {
	piece := board.Lift(from)
	var targets []Hex
	for dir := 0; dir < 6; dir++ {
		if board.CanSlide(from, dir) {
			targets = append(targets, from.Neighbor(dir))
		}
	}
	board.Place(from, piece)
	return targets
}

func (r Rules) beetleTargets(board *Board, from Hex) []Hex {
	piece := board.Lift(from)
	onStack := board.Occupied(from)
	var targets []Hex
	for dir := 0; dir < 6; dir++ {
		to := from.Neighbor(dir)
		switch {
		case board.Occupied(to):
			targets = append(targets, to) // climb
		case onStack:
			targets = append(targets, to) // drop off the stack, contact kept below
		case board.CanSlide(from, dir):
			targets = append(targets, to)
		}
	}
	board.Place(from, piece)
	return targets
}

func (r Rules) grasshopperTargets(board *Board, from Hex) []Hex {
	var targets []Hex
	for dir := 0; dir < 6; dir++ {
		hop := from.Neighbor(dir)
		if !board.Occupied(hop) {
			continue
		}
		for board.Occupied(hop) {
			hop = hop.Neighbor(dir)
		}
		targets = append(targets, hop)
	}
	return targets
}

func (r Rules) spiderTargets(board *Board, from Hex) []Hex {
	piece := board.Lift(from)
	visited := map[Hex]bool{from: true}
	endpoints := make(map[Hex]bool)
	r.spiderWalk(board, from, 3, visited, endpoints)
	board.Place(from, piece)
	targets := make([]Hex, 0, len(endpoints))
	for hex := range endpoints {
		targets = append(targets, hex)
	}
	sortHexes(targets)
	return targets
}

func (r Rules) spiderWalk(board *Board, at Hex, steps int, visited map[Hex]bool, endpoints map[Hex]bool) {
	if steps == 0 {
		endpoints[at] = true
		return
	}
	for dir := 0; dir < 6; dir++ {
		to := at.Neighbor(dir)
		if visited[to] || !board.CanSlide(at, dir) {
			continue
		}
		visited[to] = true
		r.spiderWalk(board, to, steps-1, visited, endpoints)
		delete(visited, to)
	}
}

func (r Rules) antTargets(board *Board, from Hex) []Hex {
	piece := board.Lift(from)
	reached := map[Hex]bool{from: true}
	frontier := []Hex{from}
	for len(frontier) > 0 {
		at := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for dir := 0; dir < 6; dir++ {
			to := at.Neighbor(dir)
			if reached[to] || !board.CanSlide(at, dir) {
				continue
			}
			reached[to] = true
			frontier = append(frontier, to)
		}
	}
	board.Place(from, piece)
	targets := make([]Hex, 0, len(reached)-1)
	for hex := range reached {
		if hex != from {
			targets = append(targets, hex)
		}
	}
	sortHexes(targets)
	return targets
}

// ApplyMove mutates state in place and keeps the zobrist hash current. The
// caller is responsible for passing a legal move; search replays its own
// generated moves so no validation happens here.
func (r Rules) ApplyMove(state *GameState, move Move) {
	if !move.Pass {
		if move.FromHand {
			state.Board.Place(move.To, move.Piece)
			state.Hash ^= pieceKey(move.Piece, move.To, state.Board.HeightAt(move.To)-1)
			state.InHand[move.Piece] = false
			state.PlacedCount[move.Piece.Owner()]++
		} else {
			state.Hash ^= pieceKey(move.Piece, move.From, state.Board.HeightAt(move.From)-1)
			state.Board.Lift(move.From)
			state.Board.Place(move.To, move.Piece)
			state.Hash ^= pieceKey(move.Piece, move.To, state.Board.HeightAt(move.To)-1)
		}
	}
	state.Hash ^= sideKey()
	state.ToMove = otherPlayer(state.ToMove)
	state.moveStack = append(state.moveStack, move)
}

// UndoMove reverts the most recent ApplyMove of the same move.
func (r Rules) UndoMove(state *GameState, move Move) {
	state.moveStack = state.moveStack[:len(state.moveStack)-1]
	state.ToMove = otherPlayer(state.ToMove)
	state.Hash ^= sideKey()
	if move.Pass {
		return
	}
	if move.FromHand {
		state.Hash ^= pieceKey(move.Piece, move.To, state.Board.HeightAt(move.To)-1)
		state.Board.Lift(move.To)
		state.InHand[move.Piece] = true
		state.PlacedCount[move.Piece.Owner()]--
		return
	}
	state.Hash ^= pieceKey(move.Piece, move.To, state.Board.HeightAt(move.To)-1)
	state.Board.Lift(move.To)
	state.Board.Place(move.From, move.Piece)
	state.Hash ^= pieceKey(move.Piece, move.From, state.Board.HeightAt(move.From)-1)
}

func (r Rules) PositionKey(state *GameState) uint64 {
	return state.Hash
}

// IsGameOver reports whether either queen is fully surrounded. The depth
// argument is part of the SearchRules contract; surroundedness does not
// depend on it.
func (r Rules) IsGameOver(state *GameState, depth int) bool {
	return r.queenSurrounded(state, PlayerWhite) || r.queenSurrounded(state, PlayerBlack)
}

// Winner resolves the status of a finished (or ongoing) position.
func (r Rules) Winner(state *GameState) GameStatus {
	whiteDown := r.queenSurrounded(state, PlayerWhite)
	blackDown := r.queenSurrounded(state, PlayerBlack)
	switch {
	case whiteDown && blackDown:
		return StatusDraw
	case whiteDown:
		return StatusBlackWon
	case blackDown:
		return StatusWhiteWon
	default:
		return StatusRunning
	}
}

func (r Rules) queenSurrounded(state *GameState, player PlayerColor) bool {
	pos, ok := state.QueenPosition(player)
	if !ok {
		return false
	}
	return state.Board.OccupiedNeighbors(pos) == 6
}
