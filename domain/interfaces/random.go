package interfaces

// RandomSource supplies the randomness behind economy and game outcomes
type RandomSource interface {
	// Int64Range returns a uniform integer in [min, max]
	Int64Range(min, max int64) int64

	// Float64 returns a uniform float in [0, 1)
	Float64() float64

	// FloatRange returns a uniform float in [min, max)
	FloatRange(min, max float64) float64

	// IntN returns a uniform integer in [0, n)
	IntN(n int) int
}
