package sgf

import (
	"fmt"

	apperrors "joseki/internal/errors"
)

// DecodePoint turns a two letter coordinate into a column and a row:
// 'a'..'z' map to 0..25 and 'A'..'Z' to 26..51.
func DecodePoint(value string) (x, y int, err error) {
	if len(value) != 2 {
		return 0, 0, fmt.Errorf("%w: %q: expected 2 characters", apperrors.ErrBadCoordinate, value)
	}

	x, ok := axis(value[0])
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", apperrors.ErrBadCoordinate, value)
	}
	y, ok = axis(value[1])
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", apperrors.ErrBadCoordinate, value)
	}

	return x, y, nil
}

// EncodePoint is the inverse of DecodePoint.
func EncodePoint(x, y int) (string, error) {
	cx, ok := letter(x)
	if !ok {
		return "", fmt.Errorf("%w: column %d", apperrors.ErrBadCoordinate, x)
	}
	cy, ok := letter(y)
	if !ok {
		return "", fmt.Errorf("%w: row %d", apperrors.ErrBadCoordinate, y)
	}
	return string([]byte{cx, cy}), nil
}

// IsPass reports whether a move value means "pass" on a board of the given size.
func IsPass(value string, size int) bool {
	return value == "" || (value == "tt" && size <= 19)
}

func axis(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26, true
	default:
		return 0, false
	}
}

func letter(n int) (byte, bool) {
	switch {
	case n >= 0 && n < 26:
		return byte('a' + n), true
	case n >= 26 && n < 52:
		return byte('A' + n - 26), true
	default:
		return 0, false
	}
}
