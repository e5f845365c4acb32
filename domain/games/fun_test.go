package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guildbot/domain/entities"
	"guildbot/domain/testhelpers"
)

func TestParseDice(t *testing.T) {
	count, sides, err := ParseDice("")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, int64(6), sides)

	count, sides, err = ParseDice("3D20")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, int64(20), sides)

	for _, bad := range []string{"abc", "2x6", "d6", "2d", "0d6", "2d0", "1d2d3"} {
		_, _, err := ParseDice(bad)
		assert.True(t, entities.IsValidationError(err), bad)
		assert.EqualError(t, err, "Format has to be in NdN!", bad)
	}

	_, _, err = ParseDice("26d6")
	assert.EqualError(t, err, "Too many dice! Maximum is 25")
}

func TestRollDice(t *testing.T) {
	rng := &testhelpers.ScriptedRandom{Ints: []int64{2, 6, 1}}

	roll, err := RollDice(rng, "3d6")

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 6, 1}, roll.Rolls)
	assert.Equal(t, int64(9), roll.Total)
}

func TestChoose(t *testing.T) {
	_, err := Choose(&testhelpers.ScriptedRandom{}, []string{"only"})
	assert.EqualError(t, err, "Please provide at least 2 choices!")

	picked, err := Choose(&testhelpers.ScriptedRandom{Ns: []int{1}}, []string{"tea", "coffee"})
	require.NoError(t, err)
	assert.Equal(t, "coffee", picked)
}

func TestEightBallAndFlip(t *testing.T) {
	rng := &testhelpers.ScriptedRandom{Ns: []int{19, 0, 1}}

	assert.Equal(t, "Very doubtful.", EightBall(rng))
	assert.Equal(t, "Heads", FlipCoin(rng))
	assert.Equal(t, "Tails", FlipCoin(rng))
	assert.Len(t, EightBallResponses, 20)
}

func TestValidatePoll(t *testing.T) {
	assert.EqualError(t, ValidatePoll("Lunch?", []string{"pizza"}), "Please provide at least 2 options!")
	assert.EqualError(t, ValidatePoll("Lunch?", make([]string, 11)), "Maximum 10 options allowed!")
	assert.EqualError(t, ValidatePoll(" ", []string{"a", "b"}), "Please provide a question!")
	assert.NoError(t, ValidatePoll("Lunch?", make([]string, 10)))

	assert.Equal(t, []string{"1️⃣ pizza", "2️⃣ sushi"}, PollLines([]string{"pizza", "sushi"}))
}
