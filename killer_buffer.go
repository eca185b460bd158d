package main

// LimitedBuffer is a bounded FIFO of moves. The search keeps one per
// remaining-depth index to remember which moves caused cutoffs there; when
// the buffer is full the oldest entry is evicted. Duplicates are allowed.
type LimitedBuffer struct {
	limit int
	moves []Move
}

func NewLimitedBuffer(limit int) *LimitedBuffer {
	return &LimitedBuffer{limit: limit, moves: make([]Move, 0, limit)}
}

func (b *LimitedBuffer) Add(move Move) {
	if len(b.moves) == b.limit {
		copy(b.moves, b.moves[1:])
		b.moves = b.moves[:len(b.moves)-1]
	}
	b.moves = append(b.moves, move)
}

// Moves returns the current contents oldest-first without removing them.
func (b *LimitedBuffer) Moves() []Move {
	return append([]Move(nil), b.moves...)
}

func (b *LimitedBuffer) Len() int {
	return len(b.moves)
}

func (b *LimitedBuffer) Clear() {
	b.moves = b.moves[:0]
}
