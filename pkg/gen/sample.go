package gen

import "math/rand"

// Choice pairs a candidate value with its selection weight.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Dist is an ordered weighted distribution. It is deliberately a slice and
// not a map: map iteration order is randomized per process, which would break
// the determinism contract that the whole engine rests on.
type Dist[T any] []Choice[T]

// Pick selects the first cumulative bucket containing draw (draw in [0,1)).
// If the weights sum to slightly under 1.0 from floating-point error, the
// last entry is returned.
func Pick[T any](d Dist[T], draw float64) T {
	cum := 0.0
	for _, c := range d {
		cum += c.Weight
		if draw < cum {
			return c.Value
		}
	}
	return d[len(d)-1].Value
}

// PickFrom is Pick fed by a single draw from rng.
func PickFrom[T any](d Dist[T], rng *rand.Rand) T {
	return Pick(d, rng.Float64())
}
