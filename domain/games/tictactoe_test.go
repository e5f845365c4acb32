package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicTacToe_RowWin(t *testing.T) {
	g := NewTicTacToe(1, 2)

	require.NoError(t, g.Play(1, 0))
	require.NoError(t, g.Play(2, 3))
	require.NoError(t, g.Play(1, 1))
	require.NoError(t, g.Play(2, 4))
	require.NoError(t, g.Play(1, 2))

	assert.Equal(t, StateWon, g.State)
	assert.Equal(t, int64(1), g.Winner)
	assert.Equal(t, "❌❌❌\n⭕⭕⬜\n⬜⬜⬜\n", g.Render())
	assert.ErrorIs(t, g.Play(2, 5), ErrGameFinished)
}

func TestTicTacToe_DiagonalWinForO(t *testing.T) {
	g := NewTicTacToe(1, 2)

	for _, move := range []struct {
		player int64
		cell   int
	}{{1, 0}, {2, 2}, {1, 1}, {2, 4}, {1, 8}, {2, 6}} {
		require.NoError(t, g.Play(move.player, move.cell))
	}

	assert.Equal(t, StateWon, g.State)
	assert.Equal(t, int64(2), g.Winner)
}

func TestTicTacToe_Tie(t *testing.T) {
	g := NewTicTacToe(1, 2)

	// X O X / X O O / O X X
	moves := []int{0, 1, 2, 4, 3, 5, 7, 6, 8}
	player := int64(1)
	for _, cell := range moves {
		require.NoError(t, g.Play(player, cell))
		player = g.Opponent(player)
	}

	assert.Equal(t, StateTie, g.State)
	assert.Zero(t, g.Winner)
}

func TestTicTacToe_OccupiedCellKeepsTurn(t *testing.T) {
	g := NewTicTacToe(1, 2)
	require.NoError(t, g.Play(1, 4))

	err := g.Play(2, 4)

	assert.ErrorIs(t, err, ErrCellTaken)
	assert.Equal(t, int64(2), g.Current)
	assert.Equal(t, MarkX, g.Cell(4))
	assert.Equal(t, StateAwaitingInput, g.State)
}

func TestTicTacToe_RejectsWrongPlayerAndCell(t *testing.T) {
	g := NewTicTacToe(1, 2)

	assert.ErrorIs(t, g.Play(2, 0), ErrNotYourTurn)
	assert.ErrorIs(t, g.Play(3, 0), ErrNotYourTurn)
	assert.ErrorIs(t, g.Play(1, 9), ErrInvalidCell)
	assert.ErrorIs(t, g.Play(1, -1), ErrInvalidCell)
}

func TestTicTacToe_Timeout(t *testing.T) {
	g := NewTicTacToe(1, 2)

	assert.True(t, g.Timeout())
	assert.Equal(t, StateTimedOut, g.State)
	assert.False(t, g.Timeout())
	assert.ErrorIs(t, g.Play(1, 0), ErrGameFinished)
}

func TestEmojiIndex(t *testing.T) {
	assert.Equal(t, 0, EmojiIndex("1️⃣", 9))
	assert.Equal(t, 8, EmojiIndex("9️⃣", 9))
	assert.Equal(t, -1, EmojiIndex("🔟", 9))
	assert.Equal(t, 9, EmojiIndex("🔟", 10))
	assert.Equal(t, -1, EmojiIndex("3️⃣", 2))
	assert.Equal(t, -1, EmojiIndex("👍", 10))
}
