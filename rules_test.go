package main

import "testing"

func newTestState() GameState {
	return DefaultGameState(DefaultGameSettings())
}

// placePiece puts a piece straight on the board and keeps hand, counters and
// hash consistent. Test positions are built with it instead of replaying full
// move sequences.
func placePiece(state *GameState, piece PieceID, hex Hex) {
	state.Board.Place(hex, piece)
	state.InHand[piece] = false
	state.PlacedCount[piece.Owner()]++
	state.Hash = ComputeHash(*state)
}

func containsMove(moves []Move, move Move) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}

func movesOfPiece(moves []Move, piece PieceID) []Move {
	var out []Move
	for _, m := range moves {
		if m.Piece == piece && !m.FromHand {
			out = append(out, m)
		}
	}
	return out
}

func TestFirstPlacementIsOrigin(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()

	moves := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
	if len(moves) != 5 {
		t.Fatalf("expected one move per bug type, got %d", len(moves))
	}
	for _, move := range moves {
		if !move.FromHand || move.To != (Hex{}) {
			t.Fatalf("expected placement at origin, got %v", move)
		}
	}
}

func TestTournamentRuleBlocksOpeningQueen(t *testing.T) {
	settings := DefaultGameSettings()
	settings.TournamentRule = true
	rules := NewRules(settings)
	state := newTestState()

	moves := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
	if len(moves) != 4 {
		t.Fatalf("expected 4 opening moves, got %d", len(moves))
	}
	for _, move := range moves {
		if move.Piece.Bug() == BugQueen {
			t.Fatalf("queen must not open under the tournament rule: %v", move)
		}
	}
}

func TestSecondPlacementMayTouchOpponent(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	rules.ApplyMove(&state, PlaceMove(QueenOf(PlayerWhite), Hex{}))

	moves := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
	if len(moves) != 30 {
		t.Fatalf("expected 5 bugs x 6 cells, got %d", len(moves))
	}
	for _, move := range moves {
		if move.To.DirectionTo(Hex{}) == -1 {
			t.Fatalf("second placement must touch the first piece: %v", move)
		}
	}
}

func TestLaterPlacementsAvoidOpponentContact(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	placePiece(&state, QueenOf(PlayerWhite), Hex{Q: 0, R: 0})
	placePiece(&state, QueenOf(PlayerBlack), Hex{Q: -1, R: 0})

	moves := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
	for _, move := range moves {
		if !move.FromHand {
			continue
		}
		if _, nearOpponent := state.Board.NeighborOwners(move.To, PlayerWhite); nearOpponent {
			t.Fatalf("placement %v touches an opponent piece", move)
		}
	}
}

func TestQueenForcedOnFourthPlacement(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	placePiece(&state, PieceID(1), Hex{Q: 0, R: 0})
	placePiece(&state, PieceID(3), Hex{Q: -1, R: 0})
	placePiece(&state, PieceID(5), Hex{Q: -2, R: 0})
	placePiece(&state, PieceID(12), Hex{Q: 1, R: 0})
	placePiece(&state, PieceID(13), Hex{Q: 2, R: 0})
	placePiece(&state, PieceID(14), Hex{Q: 3, R: 0})

	moves := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
	if len(moves) == 0 {
		t.Fatalf("expected forced queen placements")
	}
	for _, move := range moves {
		if !move.FromHand || move.Piece != QueenOf(PlayerWhite) {
			t.Fatalf("expected only queen placements, got %v", move)
		}
	}
}

func TestOneHiveRulePinsPiece(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	placePiece(&state, PieceID(8), Hex{Q: -1, R: 0})
	placePiece(&state, QueenOf(PlayerWhite), Hex{Q: 0, R: 0})
	placePiece(&state, QueenOf(PlayerBlack), Hex{Q: 1, R: 0})

	moves := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
	if pinned := movesOfPiece(moves, QueenOf(PlayerWhite)); len(pinned) != 0 {
		t.Fatalf("queen is an articulation point and must not move, got %v", pinned)
	}
	if free := movesOfPiece(moves, PieceID(8)); len(free) == 0 {
		t.Fatalf("the end-of-chain ant should be free to move")
	}
}

func TestPassWhenNoLegalMove(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	placePiece(&state, QueenOf(PlayerWhite), Hex{Q: 0, R: 0})
	placePiece(&state, QueenOf(PlayerBlack), Hex{Q: -1, R: 0})
	placePiece(&state, PieceID(19), Hex{Q: 1, R: 0})
	// Every other white piece is out of the game for this position.
	for i := 1; i < piecesPerPlayer; i++ {
		state.InHand[i] = false
	}

	moves := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
	if len(moves) != 1 || !moves[0].IsPass() {
		t.Fatalf("expected the single pass move, got %v", moves)
	}
	if ok, _ := rules.IsLegal(&state, PassMove, PlayerWhite); !ok {
		t.Fatalf("pass must be legal when nothing else is")
	}
}

func TestPassIllegalWhileMovesRemain(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	if ok, _ := rules.IsLegal(&state, PassMove, PlayerWhite); ok {
		t.Fatalf("pass must be illegal in the opening position")
	}
}

func TestHintPromotion(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	baseline := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
	preferred := baseline[3]
	killer := baseline[1]
	stale := PlaceMove(QueenOf(PlayerWhite), Hex{Q: 9, R: 9})

	ordered := rules.GenerateMoves(&state, preferred, killer, stale)
	if len(ordered) != len(baseline) {
		t.Fatalf("hint promotion changed move count: %d vs %d", len(ordered), len(baseline))
	}
	if ordered[0] != preferred || ordered[1] != killer {
		t.Fatalf("expected hints first, got %v, %v", ordered[0], ordered[1])
	}
	if containsMove(ordered, stale) {
		t.Fatalf("stale hint must not appear in the move list")
	}

	// A hint repeated in several slots is promoted once.
	deduped := rules.GenerateMoves(&state, preferred, preferred, NoMove)
	if len(deduped) != len(baseline) {
		t.Fatalf("duplicate hint changed move count: %d", len(deduped))
	}
	if deduped[0] != preferred || deduped[1] == preferred {
		t.Fatalf("expected single promotion of %v, got %v", preferred, deduped[:2])
	}
}

func TestGrasshopperJumpsOverLine(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	placePiece(&state, PieceID(5), Hex{Q: 0, R: 0})
	placePiece(&state, QueenOf(PlayerWhite), Hex{Q: 0, R: 1})
	placePiece(&state, QueenOf(PlayerBlack), Hex{Q: 1, R: 0})
	placePiece(&state, PieceID(3), Hex{Q: 2, R: 0})

	moves := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
	jump := SlideMove(PieceID(5), Hex{Q: 0, R: 0}, Hex{Q: 3, R: 0})
	if !containsMove(moves, jump) {
		t.Fatalf("expected grasshopper jump %v", jump)
	}
	short := SlideMove(PieceID(5), Hex{Q: 0, R: 0}, Hex{Q: 2, R: 0})
	if containsMove(moves, short) {
		t.Fatalf("grasshopper must clear the whole line, got %v", short)
	}
}

func TestSpiderMovesExactlyThreeSteps(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	placePiece(&state, PieceID(1), Hex{Q: 0, R: 0})
	placePiece(&state, QueenOf(PlayerWhite), Hex{Q: 1, R: 0})
	placePiece(&state, QueenOf(PlayerBlack), Hex{Q: 2, R: 0})

	moves := movesOfPiece(rules.GenerateMoves(&state, NoMove, NoMove, NoMove), PieceID(1))
	want := map[Hex]bool{{Q: 3, R: -1}: true, {Q: 2, R: 1}: true}
	if len(moves) != len(want) {
		t.Fatalf("expected %d spider moves, got %v", len(want), moves)
	}
	for _, move := range moves {
		if !want[move.To] {
			t.Fatalf("unexpected spider destination %v", move.To)
		}
	}
}

func TestAntWalksTheWholePerimeter(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	placePiece(&state, PieceID(8), Hex{Q: 0, R: 0})
	placePiece(&state, QueenOf(PlayerWhite), Hex{Q: 1, R: 0})
	placePiece(&state, QueenOf(PlayerBlack), Hex{Q: 2, R: 0})

	moves := movesOfPiece(rules.GenerateMoves(&state, NoMove, NoMove, NoMove), PieceID(8))
	if len(moves) != 7 {
		t.Fatalf("expected the ant to reach all 7 perimeter cells, got %d", len(moves))
	}
}

func TestBeetleClimbsAndDescends(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	beetle := PieceID(3)
	placePiece(&state, beetle, Hex{Q: 0, R: 0})
	placePiece(&state, QueenOf(PlayerWhite), Hex{Q: 1, R: 0})
	placePiece(&state, QueenOf(PlayerBlack), Hex{Q: 2, R: 0})

	moves := movesOfPiece(rules.GenerateMoves(&state, NoMove, NoMove, NoMove), beetle)
	climb := SlideMove(beetle, Hex{Q: 0, R: 0}, Hex{Q: 1, R: 0})
	if !containsMove(moves, climb) {
		t.Fatalf("expected beetle climb %v, got %v", climb, moves)
	}

	before := state.Hash
	rules.ApplyMove(&state, climb)
	if state.Board.HeightAt(Hex{Q: 1, R: 0}) != 2 {
		t.Fatalf("expected stack of height 2 after climb")
	}
	if top, _ := state.Board.Top(Hex{Q: 1, R: 0}); top != beetle {
		t.Fatalf("expected beetle on top, got %v", top)
	}
	if state.Hash != ComputeHash(state) {
		t.Fatalf("incremental hash diverged after climb")
	}
	rules.UndoMove(&state, climb)
	if state.Hash != before {
		t.Fatalf("undo did not restore the hash")
	}
	if state.Board.HeightAt(Hex{Q: 0, R: 0}) != 1 {
		t.Fatalf("undo did not put the beetle back")
	}
}

func TestWinnerDetection(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	queen := QueenOf(PlayerBlack)
	placePiece(&state, queen, Hex{Q: 0, R: 0})
	surround := []PieceID{1, 3, 5, 8, 9, 10}
	for i, piece := range surround {
		placePiece(&state, piece, Hex{}.Neighbor(i))
	}

	if !rules.IsGameOver(&state, 0) {
		t.Fatalf("expected game over with the queen surrounded")
	}
	if status := rules.Winner(&state); status != StatusWhiteWon {
		t.Fatalf("expected white win, got %v", status)
	}
}

func TestDrawWhenBothQueensFall(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	placePiece(&state, QueenOf(PlayerWhite), Hex{Q: 0, R: 0})
	placePiece(&state, QueenOf(PlayerBlack), Hex{Q: 1, R: 0})
	// Ring around both queens at once.
	ring := []Hex{
		{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1}, {Q: 1, R: 1},
		{Q: 2, R: 0}, {Q: 2, R: -1}, {Q: 1, R: -1}, {Q: 0, R: -1},
	}
	fill := []PieceID{1, 2, 3, 4, 12, 13, 14, 15}
	for i, hex := range ring {
		placePiece(&state, fill[i], hex)
	}

	if status := rules.Winner(&state); status != StatusDraw {
		t.Fatalf("expected draw, got %v", status)
	}
}
