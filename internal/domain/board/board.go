package board

import (
	"fmt"
	"math"
	"unicode"
)

const DefaultSize = 19

// Board is a square grid of intersections stored row by row.
// It knows nothing about move history; the ko rule lives in the game package.
type Board struct {
	state []Stone
	size  int
}

// New creates an empty board with the given side length.
func New(size int) *Board {
	if size < 0 {
		size = 0
	}
	return &Board{
		state: make([]Stone, size*size),
		size:  size,
	}
}

// FromString builds a board from a textual layout. Whitespace is dropped,
// every other character becomes one intersection, and the side length is the
// integer square root of the number of intersections. Cells past the largest
// square are discarded.
func FromString(layout string) *Board {
	state := make([]Stone, 0, len(layout))
	for _, r := range layout {
		if unicode.IsSpace(r) {
			continue
		}
		state = append(state, stoneFromSymbol(r))
	}

	size := isqrt(len(state))

	return &Board{
		state: state[:size*size],
		size:  size,
	}
}

func isqrt(n int) int {
	root := int(math.Sqrt(float64(n)))
	for root*root > n {
		root--
	}
	for (root+1)*(root+1) <= n {
		root++
	}
	return root
}

func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

// At returns the stone at (x, y). It panics when (x, y) is off the board.
func (b *Board) At(x, y int) Stone {
	return b.state[b.index(x, y)]
}

// Set writes a stone at (x, y) without any legality check. It panics when
// (x, y) is off the board.
func (b *Board) Set(x, y int, stone Stone) {
	b.state[b.index(x, y)] = stone
}

// Lookup is the checked variant of At.
func (b *Board) Lookup(x, y int) (Stone, bool) {
	if !b.InBounds(x, y) {
		return Empty, false
	}
	return b.state[y*b.size+x], true
}

func (b *Board) index(x, y int) int {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("board: position (%d, %d) outside %dx%d board", x, y, b.size, b.size))
	}
	return y*b.size + x
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	state := make([]Stone, len(b.state))
	copy(state, b.state)
	return &Board{state: state, size: b.size}
}

// Equal reports whether both boards have the same size and the same stones.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size || len(b.state) != len(other.state) {
		return false
	}
	for i := range b.state {
		if b.state[i] != other.state[i] {
			return false
		}
	}
	return true
}

// Count returns how many intersections hold the given stone.
func (b *Board) Count(stone Stone) int {
	n := 0
	for _, s := range b.state {
		if s == stone {
			n++
		}
	}
	return n
}
