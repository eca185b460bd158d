package main

import "fmt"

// Hex is an axial coordinate on the hive grid. The board is unbounded, so
// coordinates may go negative.
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
}

var hexDirections = [6]Hex{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R}
}

func (h Hex) Neighbor(dir int) Hex {
	return h.Add(hexDirections[dir])
}

func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i := 0; i < 6; i++ {
		out[i] = h.Neighbor(i)
	}
	return out
}

// CommonNeighbors returns the two cells adjacent to both h and its neighbor
// in direction dir. These form the gate a sliding piece must pass through.
func (h Hex) CommonNeighbors(dir int) (Hex, Hex) {
	left := (dir + 5) % 6
	right := (dir + 1) % 6
	return h.Neighbor(left), h.Neighbor(right)
}

// DirectionTo returns the direction index from h to an adjacent cell, or -1
// if the cells are not adjacent.
func (h Hex) DirectionTo(other Hex) int {
	for i := 0; i < 6; i++ {
		if h.Neighbor(i) == other {
			return i
		}
	}
	return -1
}

func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}
