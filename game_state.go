package main

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusWhiteWon
	StatusBlackWon
	StatusDraw
)

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Status      GameStatus
	InHand      [totalPieces]bool
	PlacedCount [2]int
	Hash        uint64
	LastMessage string
	moveStack   []Move
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard()
	if settings.WhiteStarts {
		s.ToMove = PlayerWhite
	} else {
		s.ToMove = PlayerBlack
	}
	s.Status = StatusNotStarted
	for i := range s.InHand {
		s.InHand[i] = true
	}
	s.PlacedCount = [2]int{}
	s.LastMessage = ""
	s.moveStack = nil
	s.Hash = ComputeHash(*s)
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.moveStack = append([]Move(nil), s.moveStack...)
	return clone
}

func (s GameState) QueenPlaced(player PlayerColor) bool {
	return !s.InHand[QueenOf(player)]
}

// QueenPosition returns the cell of the player's queen, if placed.
func (s GameState) QueenPosition(player PlayerColor) (Hex, bool) {
	if !s.QueenPlaced(player) {
		return Hex{}, false
	}
	return s.Board.Find(QueenOf(player))
}

func (s GameState) LastMove() (Move, bool) {
	if len(s.moveStack) == 0 {
		return Move{}, false
	}
	return s.moveStack[len(s.moveStack)-1], true
}

func (s GameState) MoveCount() int {
	return len(s.moveStack)
}
