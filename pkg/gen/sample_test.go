package gen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	dist := Dist[string]{
		{"a", 0.5},
		{"b", 0.3},
		{"c", 0.2},
	}

	t.Run("BucketBoundaries", func(t *testing.T) {
		assert.Equal(t, "a", Pick(dist, 0.0))
		assert.Equal(t, "a", Pick(dist, 0.49))
		assert.Equal(t, "b", Pick(dist, 0.5))
		assert.Equal(t, "b", Pick(dist, 0.79))
		assert.Equal(t, "c", Pick(dist, 0.8))
		assert.Equal(t, "c", Pick(dist, 0.999))
	})

	t.Run("UnderweightFallsBackToLast", func(t *testing.T) {
		short := Dist[string]{{"x", 0.3}, {"y", 0.3}}
		assert.Equal(t, "y", Pick(short, 0.95))
	})

	t.Run("SingleEntry", func(t *testing.T) {
		one := Dist[int]{{42, 1.0}}
		assert.Equal(t, 42, Pick(one, 0.0))
		assert.Equal(t, 42, Pick(one, 0.999))
	})

	t.Run("OrderDecidesTies", func(t *testing.T) {
		// A zero-weight entry can never win against the bucket before it.
		zero := Dist[string]{{"a", 0.5}, {"never", 0.0}, {"b", 0.5}}
		assert.Equal(t, "b", Pick(zero, 0.5))
	})
}

func TestPickFrom(t *testing.T) {
	dist := Dist[string]{{"a", 0.5}, {"b", 0.5}}

	t.Run("Deterministic", func(t *testing.T) {
		first := make([]string, 20)
		for i := range first {
			first[i] = PickFrom(dist, rand.New(rand.NewSource(int64(i))))
		}
		for i := range first {
			again := PickFrom(dist, rand.New(rand.NewSource(int64(i))))
			assert.Equal(t, first[i], again)
		}
	})

	t.Run("ConsumesExactlyOneDraw", func(t *testing.T) {
		a := rand.New(rand.NewSource(7))
		b := rand.New(rand.NewSource(7))
		PickFrom(dist, a)
		b.Float64()
		assert.Equal(t, a.Int63(), b.Int63())
	})
}

func TestDistWeights(t *testing.T) {
	// The generator distributions must cover the unit interval; a gap would
	// silently funnel draws into the last entry.
	sum := func(weights []float64) float64 {
		total := 0.0
		for _, w := range weights {
			total += w
		}
		return total
	}

	t.Run("WorkflowStatus", func(t *testing.T) {
		weights := make([]float64, len(workflowStatusDist))
		for i, c := range workflowStatusDist {
			weights[i] = c.Weight
		}
		assert.InDelta(t, 1.0, sum(weights), 1e-9)
	})

	t.Run("Priority", func(t *testing.T) {
		weights := make([]float64, len(priorityDist))
		for i, c := range priorityDist {
			weights[i] = c.Weight
		}
		assert.InDelta(t, 1.0, sum(weights), 1e-9)
	})

	t.Run("GroupAndTaskCounts", func(t *testing.T) {
		for _, d := range []Dist[int]{groupCountDist, taskCountDist} {
			weights := make([]float64, len(d))
			for i, c := range d {
				weights[i] = c.Weight
			}
			assert.InDelta(t, 1.0, sum(weights), 1e-9)
		}
	})
}
