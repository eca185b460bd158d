package main

import "testing"

func TestIncrementalHashMatchesFullRecompute(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()

	var applied []Move
	for i := 0; i < 8; i++ {
		moves := rules.GenerateMoves(&state, NoMove, NoMove, NoMove)
		move := moves[0]
		rules.ApplyMove(&state, move)
		applied = append(applied, move)
		if state.Hash != ComputeHash(state) {
			t.Fatalf("hash diverged after move %d (%v)", i, move)
		}
	}

	initial := newTestState()
	for i := len(applied) - 1; i >= 0; i-- {
		rules.UndoMove(&state, applied[i])
	}
	if state.Hash != initial.Hash {
		t.Fatalf("undo chain did not restore the initial hash")
	}
	if state.Board.CountPieces() != 0 {
		t.Fatalf("undo chain left %d pieces on the board", state.Board.CountPieces())
	}
	for i, inHand := range state.InHand {
		if !inHand {
			t.Fatalf("piece %d not returned to hand", i)
		}
	}
}

func TestSideToMoveChangesHash(t *testing.T) {
	white := newTestState()
	black := newTestState()
	black.ToMove = PlayerBlack
	black.Hash = ComputeHash(black)
	if white.Hash == black.Hash {
		t.Fatalf("side to move must be part of the hash")
	}
	if white.Hash^sideKey() != black.Hash {
		t.Fatalf("hashes of mirrored sides must differ by the side key")
	}
}

func TestPassMoveOnlyFlipsSide(t *testing.T) {
	rules := NewRules(DefaultGameSettings())
	state := newTestState()
	before := state.Hash
	rules.ApplyMove(&state, PassMove)
	if state.Hash != before^sideKey() {
		t.Fatalf("pass must only toggle the side key")
	}
	if state.ToMove != PlayerBlack {
		t.Fatalf("pass did not flip the side to move")
	}
	rules.UndoMove(&state, PassMove)
	if state.Hash != before || state.ToMove != PlayerWhite {
		t.Fatalf("undoing a pass did not restore the state")
	}
}

func TestStackHeightAffectsHash(t *testing.T) {
	a := pieceKey(PieceID(3), Hex{Q: 1, R: 0}, 0)
	b := pieceKey(PieceID(3), Hex{Q: 1, R: 0}, 1)
	if a == b {
		t.Fatalf("the same piece at different heights must hash differently")
	}
	c := pieceKey(PieceID(3), Hex{Q: -1, R: 0}, 0)
	if a == c {
		t.Fatalf("negative coordinates must produce distinct keys")
	}
}
