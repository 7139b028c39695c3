package board

import "strings"

const starGlyph = '•'

// StarPoint reports whether (x, y) is a hoshi on 9x9, 13x13 or 19x19 boards.
func (b *Board) StarPoint(x, y int) bool {
	switch b.size {
	case 9:
		return (x == 4 && y == 4) || ((x == 2 || x == 6) && (y == 2 || y == 6))
	case 13:
		return (x == 6 && y == 6) || ((x == 3 || x == 9) && (y == 3 || y == 9))
	case 19:
		return (x == 3 || x == 9 || x == 15) && (y == 3 || y == 9 || y == 15)
	default:
		return false
	}
}

// String renders one line per row with cells separated by single spaces.
func (b *Board) String() string {
	rows := make([]string, 0, b.size)

	for y := 0; y < b.size; y++ {
		var row strings.Builder
		for x := 0; x < b.size; x++ {
			if x > 0 {
				row.WriteByte(' ')
			}

			stone := b.At(x, y)
			if stone == Empty && b.StarPoint(x, y) {
				row.WriteRune(starGlyph)
			} else {
				row.WriteRune(stone.glyph())
			}
		}
		rows = append(rows, row.String())
	}

	return strings.Join(rows, "\n")
}
