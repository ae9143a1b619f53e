package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("produces unit length", func(t *testing.T) {
		normalized := NormalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, normalized[0], 1e-6)
		assert.InDelta(t, 0.8, normalized[1], 1e-6)

		var magnitude float64
		for _, v := range normalized {
			magnitude += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-6)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		input := []float32{3, 4}
		NormalizeVector(input)
		assert.Equal(t, []float32{3, 4}, input)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		assert.Equal(t, []float32{0, 0, 0}, NormalizeVector([]float32{0, 0, 0}))
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})
}

func TestDotProduct(t *testing.T) {
	t.Run("orthogonal", func(t *testing.T) {
		assert.InDelta(t, 0.0, dotProduct([]float32{1, 0}, []float32{0, 1}), 1e-6)
	})

	t.Run("identical unit vectors", func(t *testing.T) {
		assert.InDelta(t, 1.0, dotProduct([]float32{0.6, 0.8}, []float32{0.6, 0.8}), 1e-6)
	})

	t.Run("mismatched lengths use shorter", func(t *testing.T) {
		assert.InDelta(t, 2.0, dotProduct([]float32{1, 1, 1}, []float32{2}), 1e-6)
	})
}
