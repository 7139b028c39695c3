package game

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joseki/internal/domain/board"
	apperrors "joseki/internal/errors"
)

const koRecord = "(;FF[4]GM[1]SZ[5]PB[Lee Sedol]BR[9p]PW[AlphaGo]" +
	"AB[ba][ab][bc]AW[ca][bb][db][cc];B[cb]"

func TestFromSGF(t *testing.T) {
	t.Run("setup, moves and players", func(t *testing.T) {
		game, err := FromSGF(koRecord + ")")
		require.NoError(t, err)

		expected := board.FromString(`
			.#O..
			#.#O.
			.#O..
			.....
			.....`)
		assert.True(t, expected.Equal(game.Board()), "got\n%s", game.Board())
		assert.Equal(t, Player{Name: "Lee Sedol", Rank: "9p"}, game.Black)
		assert.Equal(t, Player{Name: "AlphaGo"}, game.White)
		assert.Contains(t, game.String(), "White Player: AlphaGo")
	})

	t.Run("moves respect the ko rule", func(t *testing.T) {
		_, err := FromSGF(koRecord + ";W[bb])")

		require.ErrorIs(t, err, apperrors.ErrKoViolation)
		assert.Contains(t, err.Error(), "move 2")
	})

	t.Run("passes are skipped", func(t *testing.T) {
		game, err := FromSGF("(;SZ[9];B[ee];W[];B[tt];W[cc])")
		require.NoError(t, err)

		assert.Equal(t, board.Black, game.Board().At(4, 4))
		assert.Equal(t, board.White, game.Board().At(2, 2))
		assert.Equal(t, 1, game.Board().Count(board.Black))
	})

	t.Run("ko may be retaken after passes", func(t *testing.T) {
		game, err := FromSGF(koRecord + ";W[];B[];W[bb])")
		require.NoError(t, err)

		assert.Equal(t, board.White, game.Board().At(1, 1))
		assert.Equal(t, board.Empty, game.Board().At(2, 1))
		assert.False(t, game.LastBoard().Equal(game.Board()))
	})

	t.Run("variations other than the first are not played", func(t *testing.T) {
		game, err := FromSGF("(;SZ[9];B[ee](;W[cc])(;W[gg]))")
		require.NoError(t, err)

		assert.Equal(t, 1, game.Board().Count(board.White))
		assert.Equal(t, board.White, game.Board().At(2, 2))
		assert.Equal(t, board.Empty, game.Board().At(6, 6))
	})

	t.Run("setup stones ignore legality", func(t *testing.T) {
		game, err := FromSGF("(;SZ[3]AB[ab][ba][cb][bc]AW[bb])")
		require.NoError(t, err)

		assert.Equal(t, board.White, game.Board().At(1, 1))
		assert.Nil(t, game.LastBoard())
	})

	t.Run("add empty clears a point", func(t *testing.T) {
		game, err := FromSGF("(;SZ[3]AB[aa]AE[aa])")
		require.NoError(t, err)

		assert.Equal(t, board.Empty, game.Board().At(0, 0))
	})

	t.Run("size after the first stone is ignored", func(t *testing.T) {
		game, err := FromSGF("(;SZ[9]B[aa]SZ[13])")
		require.NoError(t, err)

		assert.Equal(t, 9, game.Board().Size())
	})

	t.Run("default size", func(t *testing.T) {
		game, err := FromSGF("(;PB[Black])")
		require.NoError(t, err)

		assert.Equal(t, board.DefaultSize, game.Board().Size())
	})

	t.Run("malformed coordinate", func(t *testing.T) {
		_, err := FromSGF("(;B[a])")
		assert.ErrorIs(t, err, apperrors.ErrBadCoordinate)

		_, err = FromSGF("(;SZ[5]AB[zz])")
		assert.ErrorIs(t, err, apperrors.ErrBadCoordinate)
	})

	t.Run("illegal move", func(t *testing.T) {
		_, err := FromSGF("(;SZ[5];B[aa];W[aa])")
		assert.ErrorIs(t, err, apperrors.ErrIllegalMove)
	})

	t.Run("bad size", func(t *testing.T) {
		_, err := FromSGF("(;SZ[19:13])")
		assert.ErrorIs(t, err, apperrors.ErrBadBoardSize)

		_, err = FromSGF("(;SZ[0])")
		assert.ErrorIs(t, err, apperrors.ErrBadBoardSize)
	})
}

func TestFromSGF_File(t *testing.T) {
	data, err := os.ReadFile("testdata/sample-19.sgf")
	require.NoError(t, err)

	game, err := FromSGF(string(data))
	require.NoError(t, err)

	display := game.String()
	assert.Contains(t, display, "Black Player: Kato Ren")
	assert.Contains(t, display, "White Player: Sato Mei")
	assert.Equal(t, "4d", game.Black.Rank)
	assert.Equal(t, "8d", game.White.Rank)
	assert.Equal(t, board.Black, game.Board().At(16, 2))
	assert.Equal(t, board.White, game.Board().At(15, 16))
	assert.Equal(t, board.Empty, game.Board().At(17, 0))
	assert.Equal(t, board.Black, game.Board().At(17, 1))
	assert.Equal(t, board.White, game.Board().At(18, 1))
	assert.Equal(t, 6, game.Board().Count(board.Black))
	assert.Equal(t, 5, game.Board().Count(board.White))
}
