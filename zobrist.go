package main

// The hive has no fixed extent, so instead of a precomputed key table the
// zobrist keys are derived on demand by running a packed (piece, cell,
// height) word through the splitmix64 finalizer. The mixer is strong enough
// that derived keys behave like independent random values.

const zobristSeed = 0x9e3779b97f4a7c15

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func pieceKey(piece PieceID, hex Hex, height int) uint64 {
	packed := uint64(uint16(int16(hex.Q)))<<32 |
		uint64(uint16(int16(hex.R)))<<16 |
		uint64(piece)<<8 |
		uint64(uint8(height))
	rng := splitmix64{state: packed ^ zobristSeed}
	return rng.next()
}

func sideKey() uint64 {
	rng := splitmix64{state: zobristSeed}
	return rng.next()
}

// ComputeHash builds the position hash from scratch. Apply/undo keep it
// updated incrementally; this is the reference for tests and resets.
func ComputeHash(state GameState) uint64 {
	var hash uint64
	for hex, stack := range state.Board.stacks {
		for height, piece := range stack {
			hash ^= pieceKey(piece, hex, height)
		}
	}
	if state.ToMove == PlayerBlack {
		hash ^= sideKey()
	}
	return hash
}
