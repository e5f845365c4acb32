package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideRPS(t *testing.T) {
	tests := []struct {
		player, bot string
		want        RPSResult
	}{
		{Rock, Scissors, RPSWin},
		{Paper, Rock, RPSWin},
		{Scissors, Paper, RPSWin},
		{Rock, Paper, RPSLose},
		{Paper, Scissors, RPSLose},
		{Scissors, Rock, RPSLose},
		{Rock, Rock, RPSTie},
		{Paper, Paper, RPSTie},
		{Scissors, Scissors, RPSTie},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecideRPS(tt.player, tt.bot), "%s vs %s", tt.player, tt.bot)
	}
}

func TestRPS_Pick(t *testing.T) {
	round := NewRPS(1)

	assert.False(t, round.Pick(2, Rock, 0))
	assert.False(t, round.Pick(1, "👍", 0))

	assert.True(t, round.Pick(1, Paper, 0))
	assert.Equal(t, Rock, round.BotPick)
	assert.Equal(t, RPSWin, round.Result)
	assert.Equal(t, StateWon, round.State)
	assert.False(t, round.Timeout())
}

func TestRPS_TieAndTimeout(t *testing.T) {
	round := NewRPS(1)
	assert.True(t, round.Pick(1, Scissors, 2))
	assert.Equal(t, StateTie, round.State)

	idle := NewRPS(1)
	assert.True(t, idle.Timeout())
	assert.False(t, idle.Pick(1, Rock, 0))
}
