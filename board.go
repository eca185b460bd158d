package main

// Board is the sparse hive. Each occupied cell holds a stack of pieces,
// bottom first; only beetles ever raise the height above 1.
type Board struct {
	stacks map[Hex][]PieceID
}

func NewBoard() Board {
	return Board{stacks: make(map[Hex][]PieceID)}
}

func (b *Board) Reset() {
	b.stacks = make(map[Hex][]PieceID)
}

func (b Board) Occupied(hex Hex) bool {
	return len(b.stacks[hex]) > 0
}

func (b Board) HeightAt(hex Hex) int {
	return len(b.stacks[hex])
}

// Top returns the visible piece at hex.
func (b Board) Top(hex Hex) (PieceID, bool) {
	stack := b.stacks[hex]
	if len(stack) == 0 {
		return NoPiece, false
	}
	return stack[len(stack)-1], true
}

func (b Board) StackAt(hex Hex) []PieceID {
	return b.stacks[hex]
}

func (b *Board) Place(hex Hex, piece PieceID) {
	b.stacks[hex] = append(b.stacks[hex], piece)
}

// Lift removes and returns the top piece at hex.
func (b *Board) Lift(hex Hex) PieceID {
	stack := b.stacks[hex]
	piece := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(b.stacks, hex)
	} else {
		b.stacks[hex] = stack[:len(stack)-1]
	}
	return piece
}

func (b Board) CountPieces() int {
	count := 0
	for _, stack := range b.stacks {
		count += len(stack)
	}
	return count
}

func (b Board) CountCells() int {
	return len(b.stacks)
}

// Find returns the cell holding piece, searching stacks top to bottom.
func (b Board) Find(piece PieceID) (Hex, bool) {
	for hex, stack := range b.stacks {
		for _, p := range stack {
			if p == piece {
				return hex, true
			}
		}
	}
	return Hex{}, false
}

func (b Board) OccupiedNeighbors(hex Hex) int {
	count := 0
	for i := 0; i < 6; i++ {
		if b.Occupied(hex.Neighbor(i)) {
			count++
		}
	}
	return count
}

// NeighborOwners reports whether any neighbor's visible piece belongs to the
// given player, and whether any belongs to the opponent.
func (b Board) NeighborOwners(hex Hex, player PlayerColor) (own bool, opponent bool) {
	for i := 0; i < 6; i++ {
		if top, ok := b.Top(hex.Neighbor(i)); ok {
			if top.Owner() == player {
				own = true
			} else {
				opponent = true
			}
		}
	}
	return own, opponent
}

// ConnectedWithout reports whether the hive stays in one piece when the cell
// at ignore is treated as empty. Stacked cells stay occupied when one piece
// lifts off, so callers should skip the check for movers with height > 1.
func (b Board) ConnectedWithout(ignore Hex) bool {
	var start Hex
	found := false
	remaining := 0
	for hex := range b.stacks {
		if hex == ignore {
			continue
		}
		remaining++
		if !found {
			start = hex
			found = true
		}
	}
	if remaining <= 1 {
		return true
	}
	seen := map[Hex]bool{start: true}
	frontier := []Hex{start}
	for len(frontier) > 0 {
		hex := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for i := 0; i < 6; i++ {
			next := hex.Neighbor(i)
			if next == ignore || seen[next] || !b.Occupied(next) {
				continue
			}
			seen[next] = true
			frontier = append(frontier, next)
		}
	}
	return len(seen) == remaining
}

// CanSlide reports whether a ground-level piece at from can slide one step in
// direction dir: the destination must be empty, the gate formed by the two
// common neighbors must not be fully blocked, and at least one of them must
// be occupied so the piece keeps touching the hive mid-slide. The mover must
// already be lifted off the board when this is called.
func (b Board) CanSlide(from Hex, dir int) bool {
	to := from.Neighbor(dir)
	if b.Occupied(to) {
		return false
	}
	left, right := from.CommonNeighbors(dir)
	leftOccupied := b.Occupied(left)
	rightOccupied := b.Occupied(right)
	if leftOccupied && rightOccupied {
		return false
	}
	return leftOccupied || rightOccupied
}

func (b Board) Clone() Board {
	clone := Board{stacks: make(map[Hex][]PieceID, len(b.stacks))}
	for hex, stack := range b.stacks {
		clone.stacks[hex] = append([]PieceID(nil), stack...)
	}
	return clone
}
