package errors

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrKoViolation      = errors.New("move repeats the previous position (ko)")
	ErrBadCoordinate    = errors.New("malformed coordinate")
	ErrBadColor         = errors.New("unknown stone color")
	ErrBadBoardSize     = errors.New("unsupported board size")
	ErrCreateGameFailed = errors.New("create game failed")
	ErrGameNotFound     = errors.New("game not found")
	ErrInternal         = errors.New("internal error")
)
