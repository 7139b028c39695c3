package board

// Stone is the content of a single intersection.
type Stone uint8

const (
	Empty Stone = iota
	Black
	White
)

// Opponent returns the other player's stone. Empty has no opponent.
func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (s Stone) glyph() rune {
	switch s {
	case Black:
		return '●'
	case White:
		return '○'
	default:
		return '⋅'
	}
}

func (s Stone) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// stoneFromSymbol maps one character of a textual board to a stone.
// Anything not listed is an empty intersection.
func stoneFromSymbol(r rune) Stone {
	switch r {
	case 'B', 'X', 'x', '#', '●':
		return Black
	case 'W', 'O', 'o', '0', '○':
		return White
	default:
		return Empty
	}
}
