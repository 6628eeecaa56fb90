package gen

import (
	"math/rand"
	"time"
)

// durationBand is a [lo, hi) range of durations.
type durationBand struct {
	lo, hi time.Duration
}

// Percentile-shaped bands: most workflows queue for seconds and run for
// minutes, a long tail queues for half an hour and runs for a day.
var queueBands = Dist[durationBand]{
	{durationBand{5 * time.Second, 45 * time.Second}, 0.50},
	{durationBand{45 * time.Second, 5 * time.Minute}, 0.35},
	{durationBand{5 * time.Minute, 30 * time.Minute}, 0.15},
}

var runBands = Dist[durationBand]{
	{durationBand{2 * time.Minute, 20 * time.Minute}, 0.45},
	{durationBand{20 * time.Minute, 2 * time.Hour}, 0.40},
	{durationBand{2 * time.Hour, 24 * time.Hour}, 0.15},
}

// drawDuration picks a band with one draw, then a uniform point within it
// with a second draw. Two draws per duration, always, so the stream layout
// stays fixed even when the band collapses to a point.
func drawDuration(bands Dist[durationBand], rng *rand.Rand) time.Duration {
	band := PickFrom(bands, rng)
	span := band.hi - band.lo
	if span <= 0 {
		rng.Float64()
		return band.lo
	}
	return band.lo + time.Duration(rng.Float64()*float64(span))
}

// jitterBetween returns a duration in [lo, hi).
func jitterBetween(rng *rand.Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rng.Int63n(int64(hi-lo)))
}
