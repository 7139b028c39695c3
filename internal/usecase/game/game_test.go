package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"joseki/internal/domain/board"
	"joseki/internal/domain/game"
	apperrors "joseki/internal/errors"
	"joseki/internal/statuses"
)

type fakeStore struct {
	mu          sync.Mutex
	records     map[string]game.Record
	sgf         map[string]string
	keys        int
	appendErr   error
	generateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]game.Record),
		sgf:     make(map[string]string),
	}
}

func (f *fakeStore) GenerateGameKeys(_ context.Context) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.generateErr != nil {
		return "", "", f.generateErr
	}
	f.keys++
	return fmt.Sprintf("secret-%d", f.keys), fmt.Sprintf("%05d", f.keys), nil
}

func (f *fakeStore) PutGame(_ context.Context, record game.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.records[record.GameKey] = record
	return nil
}

func (f *fakeStore) GetGameByKey(_ context.Context, gameKey string) (game.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[gameKey]
	if !ok {
		return game.Record{}, apperrors.ErrGameNotFound
	}
	return record, nil
}

func (f *fakeStore) GetGameByPublicKey(_ context.Context, gameKeyPublic string) (game.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, record := range f.records {
		if record.PublicKey == gameKeyPublic {
			return record, nil
		}
	}
	return game.Record{}, apperrors.ErrGameNotFound
}

func (f *fakeStore) AppendMove(_ context.Context, gameKey string, move game.Move) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.appendErr != nil {
		return f.appendErr
	}
	record, ok := f.records[gameKey]
	if !ok {
		return apperrors.ErrGameNotFound
	}
	record.Moves = append(record.Moves, move)
	f.records[gameKey] = record
	return nil
}

func (f *fakeStore) SetStatus(_ context.Context, gameKey string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[gameKey]
	if !ok {
		return apperrors.ErrGameNotFound
	}
	record.Status = status
	f.records[gameKey] = record
	return nil
}

func (f *fakeStore) SaveSGF(_ context.Context, gameKey string, sgfText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sgf[gameKey] = sgfText
	return nil
}

func (f *fakeStore) LoadSGF(_ context.Context, gameKey string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	text, ok := f.sgf[gameKey]
	if !ok {
		return "", apperrors.ErrGameNotFound
	}
	return text, nil
}

func newUseCase(store GameStore) *GameUseCase {
	uc := NewGameUseCase(store, zap.NewNop().Sugar(), 19)
	uc.now = func() time.Time { return time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC) }
	return uc
}

func TestGameUseCase_CreateGame(t *testing.T) {
	t.Run("default size", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)

		// When: a game is created without a size
		resp, err := uc.CreateGame(context.Background(), game.CreateGameRequest{
			Black: game.Player{Name: "Kato", Rank: "3d"},
			White: game.Player{Name: "Sato"},
			Komi:  6.5,
		})

		// Then: a 19x19 record is stored
		require.NoError(t, err)
		assert.Equal(t, "secret-1", resp.GameKey)
		assert.Equal(t, "00001", resp.PublicKey)

		record := store.records["secret-1"]
		assert.Equal(t, 19, record.BoardSize)
		assert.Equal(t, statuses.StatusActive, record.Status)
		assert.Equal(t, "(;FF[4]GM[1]SZ[19]PB[Kato]PW[Sato]BR[3d]DT[2024-03-02]KM[6.5])", store.sgf["secret-1"])
	})

	t.Run("custom size", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)

		resp, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9})
		require.NoError(t, err)

		state, err := uc.GetGame(context.Background(), resp.GameKey)
		require.NoError(t, err)
		assert.Equal(t, 9, state.BoardSize)
		assert.Contains(t, state.Display, "Black Player: <unknown>")
	})

	t.Run("bad size", func(t *testing.T) {
		uc := newUseCase(newFakeStore())

		_, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 60})
		assert.ErrorIs(t, err, apperrors.ErrBadBoardSize)

		_, err = uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: -1})
		assert.ErrorIs(t, err, apperrors.ErrBadBoardSize)
	})

	t.Run("key generation fails", func(t *testing.T) {
		store := newFakeStore()
		store.generateErr = errors.New("mongo down")
		uc := newUseCase(store)

		_, err := uc.CreateGame(context.Background(), game.CreateGameRequest{})
		assert.ErrorIs(t, err, apperrors.ErrCreateGameFailed)
	})
}

func playAll(t *testing.T, uc *GameUseCase, gameKey string, moves ...game.Move) game.GameStateResponse {
	t.Helper()

	var state game.GameStateResponse
	for _, move := range moves {
		var err error
		state, err = uc.PlayMove(context.Background(), gameKey, move)
		require.NoError(t, err, "move %v", move)
	}
	return state
}

func TestGameUseCase_PlayMove(t *testing.T) {
	t.Run("accepted move is recorded", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)
		created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9})
		require.NoError(t, err)

		state, err := uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "black", Coordinates: "ee"})

		require.NoError(t, err)
		require.NotNil(t, state.Move)
		assert.Equal(t, game.Move{Color: "B", Coordinates: "ee"}, *state.Move)
		assert.Equal(t, 1, state.MoveCount)
		assert.Contains(t, state.SGF, ";B[ee])")
		assert.Equal(t, store.sgf[created.GameKey], state.SGF)
		assert.Equal(t, []game.Move{{Color: "B", Coordinates: "ee"}}, store.records[created.GameKey].Moves)

		current := board.FromString(state.Board)
		assert.Equal(t, board.Black, current.At(4, 4))
	})

	t.Run("ko is rejected and nothing is stored", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)
		created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 5})
		require.NoError(t, err)

		playAll(t, uc, created.GameKey,
			game.Move{Color: "B", Coordinates: "ba"},
			game.Move{Color: "W", Coordinates: "ca"},
			game.Move{Color: "B", Coordinates: "ab"},
			game.Move{Color: "W", Coordinates: "bb"},
			game.Move{Color: "B", Coordinates: "bc"},
			game.Move{Color: "W", Coordinates: "db"},
			game.Move{Color: "W", Coordinates: "cc"},
			game.Move{Color: "B", Coordinates: "cb"},
		)
		before := store.sgf[created.GameKey]

		_, err = uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "W", Coordinates: "bb"})

		require.ErrorIs(t, err, apperrors.ErrKoViolation)
		assert.Equal(t, before, store.sgf[created.GameKey])
		assert.Len(t, store.records[created.GameKey].Moves, 8)
	})

	t.Run("illegal input", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)
		created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9})
		require.NoError(t, err)
		playAll(t, uc, created.GameKey, game.Move{Color: "B", Coordinates: "aa"})

		_, err = uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "W", Coordinates: "aa"})
		assert.ErrorIs(t, err, apperrors.ErrIllegalMove)

		_, err = uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "W", Coordinates: "zz"})
		assert.ErrorIs(t, err, apperrors.ErrIllegalMove)

		_, err = uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "W", Coordinates: "a"})
		assert.ErrorIs(t, err, apperrors.ErrBadCoordinate)

		_, err = uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "green", Coordinates: "bb"})
		assert.ErrorIs(t, err, apperrors.ErrBadColor)

		_, err = uc.PlayMove(context.Background(), "missing", game.Move{Color: "B", Coordinates: "bb"})
		assert.ErrorIs(t, err, apperrors.ErrGameNotFound)

		assert.Len(t, store.records[created.GameKey].Moves, 1)
	})

	t.Run("completed game", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)
		created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9})
		require.NoError(t, err)

		record := store.records[created.GameKey]
		record.Status = statuses.StatusCompleted
		store.records[created.GameKey] = record

		_, err = uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "B", Coordinates: "aa"})
		assert.ErrorIs(t, err, apperrors.ErrIllegalMove)
	})

	t.Run("two passes in a row complete the game", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)
		created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9})
		require.NoError(t, err)

		// Given: a pass that is answered by a stone
		playAll(t, uc, created.GameKey,
			game.Move{Color: "B", Coordinates: "ee"},
			game.Move{Color: "W"},
			game.Move{Color: "B", Coordinates: "cc"},
		)
		assert.Equal(t, statuses.StatusActive, store.records[created.GameKey].Status)

		// When: both sides pass
		state := playAll(t, uc, created.GameKey,
			game.Move{Color: "W", Coordinates: "tt"},
			game.Move{Color: "B"},
		)

		// Then: the game is completed and further moves are rejected
		assert.Equal(t, statuses.StatusCompleted, state.Status)
		assert.Equal(t, statuses.StatusCompleted, store.records[created.GameKey].Status)
		assert.Equal(t, 5, state.MoveCount)
		assert.Equal(t, game.Move{Color: "B"}, *state.Move)
		assert.True(t, strings.HasSuffix(store.sgf[created.GameKey], ";B[ee];W[];B[cc];W[];B[])"))

		_, err = uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "W", Coordinates: "gg"})
		assert.ErrorIs(t, err, apperrors.ErrIllegalMove)
	})

	t.Run("document failure does not reject the move", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)
		created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9})
		require.NoError(t, err)
		store.appendErr = errors.New("mongo down")

		state, err := uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "B", Coordinates: "cc"})

		require.NoError(t, err)
		assert.Contains(t, store.sgf[created.GameKey], ";B[cc]")
		assert.Equal(t, 1, state.MoveCount)
	})

	t.Run("concurrent moves on one game", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)
		created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9})
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 9)
		for i := 0; i < 9; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				coordinates := string([]byte{byte('a' + i), 'a' + byte(i%2)*4})
				_, errs[i] = uc.PlayMove(context.Background(), created.GameKey, game.Move{Color: "B", Coordinates: coordinates})
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}

		state, err := uc.GetGame(context.Background(), created.GameKey)
		require.NoError(t, err)
		assert.Equal(t, 9, board.FromString(state.Board).Count(board.Black))
		assert.Len(t, store.records[created.GameKey].Moves, 9)
	})
}

func TestGameUseCase_ImportGame(t *testing.T) {
	t.Run("record is replayed and stored", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)

		state, err := uc.ImportGame(context.Background(),
			"\n(;SZ[9]KM[7.5]PB[Kato]PW[Sato]WR[2k];B[ee];W[cc];B[];W[gg])\n")

		require.NoError(t, err)
		assert.Equal(t, 9, state.BoardSize)
		assert.Equal(t, 4, state.MoveCount)
		assert.Equal(t, "Kato", state.Black.Name)
		assert.Equal(t, game.Player{Name: "Sato", Rank: "2k"}, state.White)
		assert.Contains(t, state.Display, "White Player: Sato")

		record := store.records[state.GameKey]
		assert.Equal(t, statuses.StatusImported, record.Status)
		assert.Equal(t, game.Move{Color: "B"}, record.Moves[2])
		assert.Equal(t, 7.5, record.Komi)
		assert.Equal(t, "(;SZ[9]KM[7.5]PB[Kato]PW[Sato]WR[2k];B[ee];W[cc];B[];W[gg])", store.sgf[state.GameKey])

		byCode, err := uc.GetGameByPublicKey(context.Background(), state.PublicKey)
		require.NoError(t, err)
		assert.Equal(t, state.Board, byCode.Board)

		// the imported game can be continued
		next, err := uc.PlayMove(context.Background(), state.GameKey, game.Move{Color: "B", Coordinates: "ge"})
		require.NoError(t, err)
		assert.Equal(t, 5, next.MoveCount)
	})

	t.Run("record ending in two passes is completed", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)

		state, err := uc.ImportGame(context.Background(), "(;SZ[9];B[ee];W[cc];B[];W[tt])")

		require.NoError(t, err)
		assert.Equal(t, statuses.StatusCompleted, state.Status)

		_, err = uc.PlayMove(context.Background(), state.GameKey, game.Move{Color: "B", Coordinates: "gg"})
		assert.ErrorIs(t, err, apperrors.ErrIllegalMove)
	})

	t.Run("illegal record", func(t *testing.T) {
		store := newFakeStore()
		uc := newUseCase(store)

		_, err := uc.ImportGame(context.Background(), "(;SZ[9];B[ee];W[ee])")

		assert.ErrorIs(t, err, apperrors.ErrIllegalMove)
		assert.Empty(t, store.records)
	})
}

func TestGameUseCase_GetGame(t *testing.T) {
	uc := newUseCase(newFakeStore())

	_, err := uc.GetGame(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrGameNotFound)

	_, err = uc.GetGameByPublicKey(context.Background(), "99999")
	assert.ErrorIs(t, err, apperrors.ErrGameNotFound)
}

func TestKeyedMutex(t *testing.T) {
	locks := newKeyedMutex()

	unlockA := locks.lock("a")
	unlockB := locks.lock("b")
	assert.Len(t, locks.locks, 2)

	unlockA()
	unlockB()
	assert.Empty(t, locks.locks)
}
