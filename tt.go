package main

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

type TTEntry struct {
	Value    int
	Depth    int
	Flag     TTFlag
	BestMove Move
}

// TranspositionTable maps position keys to the most recent search verdict.
// Store always overwrites: the node classification in the evaluator relies
// on the table holding the latest result for a key, so there is no
// depth-preferred replacement policy and no eviction. The table lives and
// dies with one engine instance.
type TranspositionTable struct {
	entries map[uint64]TTEntry
}

func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{entries: make(map[uint64]TTEntry)}
}

func (tt *TranspositionTable) Lookup(key uint64) (TTEntry, bool) {
	entry, ok := tt.entries[key]
	return entry, ok
}

func (tt *TranspositionTable) Store(key uint64, value, depth int, flag TTFlag, best Move) {
	tt.entries[key] = TTEntry{Value: value, Depth: depth, Flag: flag, BestMove: best}
}

func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

func (tt *TranspositionTable) Clear() {
	tt.entries = make(map[uint64]TTEntry)
}

func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "EXACT"
	case TTLower:
		return "LOWER"
	default:
		return "UPPER"
	}
}
