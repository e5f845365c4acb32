package testhelpers

import "fmt"

// ScriptedRandom returns queued values in order and panics when a queue runs dry,
// so a test fails loudly if the code draws more randomness than expected.
type ScriptedRandom struct {
	Ints   []int64
	Floats []float64
	Ns     []int
}

func (r *ScriptedRandom) Int64Range(min, max int64) int64 {
	if len(r.Ints) == 0 {
		panic(fmt.Sprintf("unexpected Int64Range(%d, %d)", min, max))
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	if v < min || v > max {
		panic(fmt.Sprintf("scripted int %d outside [%d, %d]", v, min, max))
	}
	return v
}

func (r *ScriptedRandom) Float64() float64 {
	return r.nextFloat("Float64")
}

// FloatRange consumes a scripted value and returns it unchanged
func (r *ScriptedRandom) FloatRange(min, max float64) float64 {
	v := r.nextFloat("FloatRange")
	if v < min || v > max {
		panic(fmt.Sprintf("scripted float %f outside [%f, %f]", v, min, max))
	}
	return v
}

func (r *ScriptedRandom) IntN(n int) int {
	if len(r.Ns) == 0 {
		panic(fmt.Sprintf("unexpected IntN(%d)", n))
	}
	v := r.Ns[0]
	r.Ns = r.Ns[1:]
	return v % n
}

func (r *ScriptedRandom) nextFloat(name string) float64 {
	if len(r.Floats) == 0 {
		panic("unexpected " + name)
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}
