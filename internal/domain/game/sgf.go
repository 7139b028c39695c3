package game

import (
	"fmt"
	"strconv"
	"strings"

	"joseki/internal/domain/board"
	"joseki/internal/domain/sgf"
	apperrors "joseki/internal/errors"
)

// FromSGF builds a game from the text of a record. Setup properties
// (AB, AW, AE) write stones directly, moves (B, W) go through Play so
// captures and the ko rule apply, and player names and ranks are kept.
// SZ is honoured only before the first stone. Unknown properties are
// ignored.
func FromSGF(text string) (*Game, error) {
	g := New()
	if err := g.Apply(sgf.Parse(text)); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply feeds record properties into the game in order.
func (g *Game) Apply(props []sgf.Property) error {
	placed := g.board.Count(board.Empty) != g.board.Size()*g.board.Size()
	moves := 0

	for _, prop := range props {
		switch prop.Key {
		case sgf.KeySize:
			if placed {
				continue
			}
			size, err := parseSize(prop.Value)
			if err != nil {
				return err
			}
			g.board = board.New(size)
			g.last = nil

		case sgf.KeyAddBlack, sgf.KeyAddWhite, sgf.KeyAddEmpty:
			x, y, err := sgf.DecodePoint(prop.Value)
			if err != nil {
				return fmt.Errorf("%s[%s]: %w", prop.Key, prop.Value, err)
			}
			if err = g.AddStone(setupStone(prop.Key), x, y); err != nil {
				return fmt.Errorf("%s[%s]: %w", prop.Key, prop.Value, err)
			}
			placed = true

		case sgf.KeyBlack, sgf.KeyWhite:
			moves++
			if sgf.IsPass(prop.Value, g.board.Size()) {
				g.Pass()
				continue
			}
			x, y, err := sgf.DecodePoint(prop.Value)
			if err != nil {
				return fmt.Errorf("move %d %s[%s]: %w", moves, prop.Key, prop.Value, err)
			}
			stone := board.Black
			if prop.Key == sgf.KeyWhite {
				stone = board.White
			}
			if err = g.Play(stone, x, y); err != nil {
				return fmt.Errorf("move %d %s[%s]: %w", moves, prop.Key, prop.Value, err)
			}
			placed = true

		case sgf.KeyBlackName:
			g.Black.Name = prop.Value
		case sgf.KeyWhiteName:
			g.White.Name = prop.Value
		case sgf.KeyBlackRank:
			g.Black.Rank = prop.Value
		case sgf.KeyWhiteRank:
			g.White.Rank = prop.Value
		}
	}

	return nil
}

func setupStone(key string) board.Stone {
	switch key {
	case sgf.KeyAddBlack:
		return board.Black
	case sgf.KeyAddWhite:
		return board.White
	default:
		return board.Empty
	}
}

func parseSize(value string) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || size < 1 || size > 52 {
		return 0, fmt.Errorf("%w: SZ[%s]", apperrors.ErrBadBoardSize, value)
	}
	return size, nil
}
