package game

import (
	"fmt"
	"strings"
	"time"

	"joseki/internal/domain/board"
	"joseki/internal/domain/sgf"
	apperrors "joseki/internal/errors"
)

// Record is the stored form of a game. The position itself lives in the SGF
// text kept next to it.
type Record struct {
	GameKey   string    `json:"game_key" bson:"game_key"`
	PublicKey string    `json:"game_key_public" bson:"game_key_public"`
	BoardSize int       `json:"board_size" bson:"board_size"`
	Black     Player    `json:"black" bson:"black"`
	White     Player    `json:"white" bson:"white"`
	Komi      float64   `json:"komi" bson:"komi"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Moves     []Move    `json:"moves" bson:"moves"`
}

// Move is a played stone in wire form: Color is "B" or "W" and Coordinates a
// two letter SGF point such as "pd". Empty Coordinates is a pass.
type Move struct {
	Color       string `json:"color" bson:"color"`
	Coordinates string `json:"coordinates" bson:"coordinates"`
}

// Stone resolves the color of a move. "B"/"black" and "W"/"white" are
// accepted in any case.
func (m Move) Stone() (board.Stone, error) {
	switch strings.ToLower(strings.TrimSpace(m.Color)) {
	case "b", "black":
		return board.Black, nil
	case "w", "white":
		return board.White, nil
	default:
		return board.Empty, fmt.Errorf("%w: %q", apperrors.ErrBadColor, m.Color)
	}
}

// Point decodes the move's coordinates.
func (m Move) Point() (board.Point, error) {
	x, y, err := sgf.DecodePoint(m.Coordinates)
	if err != nil {
		return board.Point{}, err
	}
	return board.Point{X: x, Y: y}, nil
}

// Key returns the SGF property key for the move's color.
func (m Move) Key() (string, error) {
	stone, err := m.Stone()
	if err != nil {
		return "", err
	}
	if stone == board.White {
		return sgf.KeyWhite, nil
	}
	return sgf.KeyBlack, nil
}

type CreateGameRequest struct {
	BoardSize int     `json:"board_size"`
	Black     Player  `json:"black"`
	White     Player  `json:"white"`
	Komi      float64 `json:"komi"`
}

type GameCreateResponse struct {
	GameKey   string `json:"game_key"`
	PublicKey string `json:"game_key_public"`
}

// GameStateResponse is sent after every accepted move and on lookups.
type GameStateResponse struct {
	GameKey   string `json:"game_key"`
	PublicKey string `json:"game_key_public"`
	Move      *Move  `json:"move,omitempty"`
	BoardSize int    `json:"board_size"`
	Board     string `json:"board"`
	Display   string `json:"display"`
	SGF       string `json:"sgf"`
	Black     Player `json:"black"`
	White     Player `json:"white"`
	MoveCount int    `json:"move_count"`
	Status    string `json:"status"`
}

type MoveErrorResponse struct {
	Move  Move   `json:"move"`
	Error string `json:"error"`
}
