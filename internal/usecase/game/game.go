package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"joseki/internal/domain/board"
	"joseki/internal/domain/game"
	"joseki/internal/domain/sgf"
	apperrors "joseki/internal/errors"
	"joseki/internal/statuses"
)

const maxBoardSize = 52

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string, err error)
	PutGame(ctx context.Context, record game.Record) error
	GetGameByKey(ctx context.Context, gameKey string) (game.Record, error)
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Record, error)
	AppendMove(ctx context.Context, gameKey string, move game.Move) error
	SetStatus(ctx context.Context, gameKey string, status string) error
	SaveSGF(ctx context.Context, gameKey string, sgfText string) error
	LoadSGF(ctx context.Context, gameKey string) (string, error)
}

type GameUseCase struct {
	store            GameStore
	log              *zap.SugaredLogger
	defaultBoardSize int
	locks            *keyedMutex
	now              func() time.Time
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger, defaultBoardSize int) *GameUseCase {
	if defaultBoardSize <= 0 {
		defaultBoardSize = board.DefaultSize
	}
	return &GameUseCase{
		store:            store,
		log:              log,
		defaultBoardSize: defaultBoardSize,
		locks:            newKeyedMutex(),
		now:              time.Now,
	}
}

// CreateGame stores a new empty game and its initial record.
func (g *GameUseCase) CreateGame(ctx context.Context, request game.CreateGameRequest) (game.GameCreateResponse, error) {
	size := request.BoardSize
	if size == 0 {
		size = g.defaultBoardSize
	}
	if size < 1 || size > maxBoardSize {
		return game.GameCreateResponse{}, fmt.Errorf("%w: %d", apperrors.ErrBadBoardSize, size)
	}

	gameKeySecret, gameKeyPublic, err := g.store.GenerateGameKeys(ctx)
	if err != nil {
		return game.GameCreateResponse{}, fmt.Errorf("%w: %v", apperrors.ErrCreateGameFailed, err)
	}

	record := game.Record{
		GameKey:   gameKeySecret,
		PublicKey: gameKeyPublic,
		BoardSize: size,
		Black:     request.Black,
		White:     request.White,
		Komi:      request.Komi,
		Status:    statuses.StatusActive,
		CreatedAt: g.now().UTC(),
		Moves:     []game.Move{},
	}

	if err = g.save(ctx, record, sgf.Serialize(PrepareSgfFile(record))); err != nil {
		return game.GameCreateResponse{}, err
	}

	g.log.Infof("game %s created (%dx%d)", gameKeyPublic, size, size)

	return game.GameCreateResponse{GameKey: gameKeySecret, PublicKey: gameKeyPublic}, nil
}

// ImportGame creates a game from an existing record. The record is replayed
// first, so one that contains an illegal move is rejected.
func (g *GameUseCase) ImportGame(ctx context.Context, sgfText string) (game.GameStateResponse, error) {
	props := sgf.Parse(sgfText)

	play := game.New()
	if err := play.Apply(props); err != nil {
		return game.GameStateResponse{}, err
	}

	gameKeySecret, gameKeyPublic, err := g.store.GenerateGameKeys(ctx)
	if err != nil {
		return game.GameStateResponse{}, fmt.Errorf("%w: %v", apperrors.ErrCreateGameFailed, err)
	}

	size := play.Board().Size()
	record := game.Record{
		GameKey:   gameKeySecret,
		PublicKey: gameKeyPublic,
		BoardSize: size,
		Black:     play.Black,
		White:     play.White,
		Status:    statuses.StatusImported,
		CreatedAt: g.now().UTC(),
		Moves:     movesOf(props, size),
	}
	if trailingPasses(props, size) >= 2 {
		record.Status = statuses.StatusCompleted
	}
	for _, prop := range props {
		if prop.Key == sgf.KeyKomi {
			if komi, err := strconv.ParseFloat(strings.TrimSpace(prop.Value), 64); err == nil {
				record.Komi = komi
			}
		}
	}

	sgfText = strings.TrimSpace(sgfText)
	if err = g.save(ctx, record, sgfText); err != nil {
		return game.GameStateResponse{}, err
	}

	g.log.Infof("game %s imported with %d moves", gameKeyPublic, len(record.Moves))

	return stateResponse(record, play, sgfText, nil), nil
}

func (g *GameUseCase) save(ctx context.Context, record game.Record, sgfText string) error {
	if err := g.store.PutGame(ctx, record); err != nil {
		return err
	}
	if err := g.store.SaveSGF(ctx, record.GameKey, sgfText); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCreateGameFailed, err)
	}
	return nil
}

// GetGame returns the current state of the game with the given secret key.
func (g *GameUseCase) GetGame(ctx context.Context, gameKey string) (game.GameStateResponse, error) {
	record, err := g.store.GetGameByKey(ctx, gameKey)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	return g.state(ctx, record)
}

// GetGameByPublicKey is GetGame for the short public code.
func (g *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.GameStateResponse, error) {
	record, err := g.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	return g.state(ctx, record)
}

func (g *GameUseCase) state(ctx context.Context, record game.Record) (game.GameStateResponse, error) {
	play, sgfText, err := g.replay(ctx, record.GameKey)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	return stateResponse(record, play, sgfText, nil), nil
}

// PlayMove replays the stored record, applies move and, if it is legal,
// appends it to the record. A move without coordinates is a pass; the
// second pass in a row completes the game. Moves on the same game are
// serialised.
func (g *GameUseCase) PlayMove(ctx context.Context, gameKey string, move game.Move) (game.GameStateResponse, error) {
	key, err := move.Key()
	if err != nil {
		return game.GameStateResponse{}, err
	}
	stone, _ := move.Stone()

	unlock := g.locks.lock(gameKey)
	defer unlock()

	record, err := g.store.GetGameByKey(ctx, gameKey)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if record.Status == statuses.StatusCompleted {
		return game.GameStateResponse{}, fmt.Errorf("%w: game %s is completed", apperrors.ErrIllegalMove, record.PublicKey)
	}

	play, sgfText, err := g.replay(ctx, gameKey)
	if err != nil {
		return game.GameStateResponse{}, err
	}

	size := play.Board().Size()
	pass := sgf.IsPass(move.Coordinates, size)
	finished := pass && trailingPasses(sgf.Parse(sgfText), size) > 0

	if pass {
		play.Pass()
		move = game.Move{Color: key}
	} else {
		point, err := move.Point()
		if err != nil {
			return game.GameStateResponse{}, err
		}
		if err = play.Play(stone, point.X, point.Y); err != nil {
			g.log.Infof("game %s: rejected %s[%s]: %v", record.PublicKey, key, move.Coordinates, err)
			return game.GameStateResponse{}, err
		}
		move = game.Move{Color: key, Coordinates: move.Coordinates}
	}

	sgfText = sgf.AppendMove(sgfText, key, move.Coordinates)

	if err = g.store.SaveSGF(ctx, gameKey, sgfText); err != nil {
		return game.GameStateResponse{}, fmt.Errorf("%w: save record: %v", apperrors.ErrInternal, err)
	}
	if err = g.store.AppendMove(ctx, gameKey, move); err != nil {
		// The SGF text is authoritative; the move list is only a summary.
		g.log.Errorf("game %s: failed to append move to document: %v", record.PublicKey, err)
	}
	record.Moves = append(record.Moves, move)

	if finished {
		if err = g.store.SetStatus(ctx, gameKey, statuses.StatusCompleted); err != nil {
			return game.GameStateResponse{}, fmt.Errorf("%w: complete game: %v", apperrors.ErrInternal, err)
		}
		record.Status = statuses.StatusCompleted
		g.log.Infof("game %s completed after %d moves", record.PublicKey, len(record.Moves))
	}

	return stateResponse(record, play, sgfText, &move), nil
}

func (g *GameUseCase) replay(ctx context.Context, gameKey string) (*game.Game, string, error) {
	sgfText, err := g.store.LoadSGF(ctx, gameKey)
	if err != nil {
		return nil, "", err
	}

	play, err := game.FromSGF(sgfText)
	if err != nil {
		return nil, "", fmt.Errorf("%w: replay %s: %v", apperrors.ErrInternal, gameKey, err)
	}

	return play, sgfText, nil
}

// PrepareSgfFile builds the root node of a new game's record.
func PrepareSgfFile(record game.Record) *sgf.SGF {
	properties := map[string][]string{
		sgf.KeyFileFormat: {"4"},
		sgf.KeyGameType:   {"1"},
		sgf.KeySize:       {strconv.Itoa(record.BoardSize)},
		sgf.KeyDate:       {record.CreatedAt.Format("2006-01-02")},
		sgf.KeyKomi:       {strconv.FormatFloat(record.Komi, 'f', 1, 64)},
	}
	if record.Black.Name != "" {
		properties[sgf.KeyBlackName] = []string{record.Black.Name}
	}
	if record.White.Name != "" {
		properties[sgf.KeyWhiteName] = []string{record.White.Name}
	}
	if record.Black.Rank != "" {
		properties[sgf.KeyBlackRank] = []string{record.Black.Rank}
	}
	if record.White.Rank != "" {
		properties[sgf.KeyWhiteRank] = []string{record.White.Rank}
	}

	return &sgf.SGF{
		Root: &sgf.GameTree{
			Nodes: []sgf.Node{{Properties: properties}},
		},
	}
}

func movesOf(props []sgf.Property, size int) []game.Move {
	moves := []game.Move{}
	for _, prop := range props {
		if prop.Key != sgf.KeyBlack && prop.Key != sgf.KeyWhite {
			continue
		}
		if sgf.IsPass(prop.Value, size) {
			moves = append(moves, game.Move{Color: prop.Key})
			continue
		}
		moves = append(moves, game.Move{Color: prop.Key, Coordinates: prop.Value})
	}
	return moves
}

// trailingPasses counts the passes at the end of a record's moves.
func trailingPasses(props []sgf.Property, size int) int {
	passes := 0
	for i := len(props) - 1; i >= 0; i-- {
		if props[i].Key != sgf.KeyBlack && props[i].Key != sgf.KeyWhite {
			continue
		}
		if !sgf.IsPass(props[i].Value, size) {
			break
		}
		passes++
	}
	return passes
}

func stateResponse(record game.Record, play *game.Game, sgfText string, move *game.Move) game.GameStateResponse {
	current := play.Board()
	return game.GameStateResponse{
		GameKey:   record.GameKey,
		PublicKey: record.PublicKey,
		Move:      move,
		BoardSize: current.Size(),
		Board:     current.String(),
		Display:   play.String(),
		SGF:       sgfText,
		Black:     play.Black,
		White:     play.White,
		MoveCount: len(record.Moves),
		Status:    record.Status,
	}
}
