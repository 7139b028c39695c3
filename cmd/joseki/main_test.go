package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.sgf")
	require.NoError(t, os.WriteFile(path, []byte("(;SZ[3]PW[Lee Sedol];B[bb])"), 0o600))

	play, err := load(path)

	require.NoError(t, err)
	assert.Equal(t, "Black Player: <unknown>\nWhite Player: Lee Sedol\n⋅ ⋅ ⋅\n⋅ ● ⋅\n⋅ ⋅ ⋅", play.String())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "missing.sgf"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}
