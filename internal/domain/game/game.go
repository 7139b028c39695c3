package game

import (
	"fmt"

	"joseki/internal/domain/board"
	apperrors "joseki/internal/errors"
)

const unknownPlayer = "<unknown>"

// Player is the metadata a record carries about one side. Empty fields are
// unknown.
type Player struct {
	Name string `json:"name,omitempty" bson:"name,omitempty"`
	Rank string `json:"rank,omitempty" bson:"rank,omitempty"`
}

// Game is the current board plus the board as it was one accepted move ago,
// which is enough to reject an immediate recapture of a ko.
//
// A Game is not safe for concurrent use.
type Game struct {
	board *board.Board
	last  *board.Board

	Black Player
	White Player
}

// New starts a game on an empty 19x19 board.
func New() *Game {
	return NewWithSize(board.DefaultSize)
}

func NewWithSize(size int) *Game {
	return &Game{board: board.New(size)}
}

// FromString starts a game from a textual board (see board.FromString).
func FromString(layout string) *Game {
	return &Game{board: board.FromString(layout)}
}

// Board returns a copy of the current position.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

// LastBoard returns a copy of the position before the last accepted move,
// or nil if no move has been played yet.
func (g *Game) LastBoard() *board.Board {
	if g.last == nil {
		return nil
	}
	return g.last.Clone()
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	return &Game{
		board: g.board.Clone(),
		last:  g.LastBoard(),
		Black: g.Black,
		White: g.White,
	}
}

// Play places stone at (x, y). It returns ErrIllegalMove when the board
// rejects the placement and ErrKoViolation when the result would equal the
// position before the previous move. The game is unchanged on error.
func (g *Game) Play(stone board.Stone, x, y int) error {
	candidate := g.board.Clone()

	if !candidate.MakeMove(stone, x, y) {
		return fmt.Errorf("%w: %s at (%d, %d)", apperrors.ErrIllegalMove, stone, x, y)
	}

	if g.last != nil && g.last.Equal(candidate) {
		return fmt.Errorf("%w: %s at (%d, %d)", apperrors.ErrKoViolation, stone, x, y)
	}

	g.last = g.board
	g.board = candidate

	return nil
}

// Pass records a turn without a stone. The current position becomes the
// previous one, so a ko may be retaken after a pass.
func (g *Game) Pass() {
	g.last = g.board.Clone()
}

// MakeMove is Play reduced to success or failure.
func (g *Game) MakeMove(stone board.Stone, x, y int) bool {
	return g.Play(stone, x, y) == nil
}

// AddStone writes stone at (x, y) directly, without legality checks,
// captures or history. Records use it to set up positions.
func (g *Game) AddStone(stone board.Stone, x, y int) error {
	if !g.board.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d board", apperrors.ErrBadCoordinate, x, y, g.board.Size(), g.board.Size())
	}
	g.board.Set(x, y, stone)
	return nil
}

// Player returns the metadata of the side playing stone.
func (g *Game) Player(stone board.Stone) *Player {
	switch stone {
	case board.Black:
		return &g.Black
	case board.White:
		return &g.White
	default:
		return nil
	}
}

func (g *Game) String() string {
	return fmt.Sprintf("Black Player: %s\nWhite Player: %s\n%s",
		displayName(g.Black), displayName(g.White), g.board)
}

func displayName(p Player) string {
	if p.Name == "" {
		return unknownPlayer
	}
	return p.Name
}
