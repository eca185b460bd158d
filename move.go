package main

// Move is either a placement (FromHand), a board move, or the pass move.
// Moves are plain comparable values so they can be stored in the
// transposition table and killer buffers and compared with ==.
type Move struct {
	Piece    PieceID
	From     Hex
	To       Hex
	FromHand bool
	Pass     bool
}

// PassMove is the fallback when a player has no legal placement or movement.
var PassMove = Move{Piece: NoPiece, Pass: true}

func PlaceMove(piece PieceID, to Hex) Move {
	return Move{Piece: piece, To: to, FromHand: true}
}

func SlideMove(piece PieceID, from, to Hex) Move {
	return Move{Piece: piece, From: from, To: to}
}

func (m Move) Equals(other Move) bool {
	return m == other
}

func (m Move) IsPass() bool {
	return m.Pass
}

func (m Move) String() string {
	if m.Pass {
		return "pass"
	}
	if m.FromHand {
		return m.Piece.Owner().String() + " " + m.Piece.Bug().String() + " -> " + m.To.String()
	}
	return m.Piece.Owner().String() + " " + m.Piece.Bug().String() + " " + m.From.String() + " -> " + m.To.String()
}
