package utils

import (
	"math/rand/v2"

	"guildbot/domain/interfaces"
)

type mathRandom struct{}

// NewRandomSource returns a RandomSource backed by math/rand/v2
func NewRandomSource() interfaces.RandomSource {
	return mathRandom{}
}

func (mathRandom) Int64Range(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + rand.Int64N(max-min+1)
}

func (mathRandom) Float64() float64 {
	return rand.Float64()
}

func (mathRandom) FloatRange(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

func (mathRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}
