package utils

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativeNorm(t *testing.T) {
	assert.InDelta(t, 0.5, RelativeNorm([]float64{3, 0}, []float64{2, 0}), 1.e-15)
	// A vanishing reference falls back to the absolute norm
	assert.InDelta(t, 5, RelativeNorm([]float64{3, 4}, []float64{0, 0}), 1.e-15)
	assert.Panics(t, func() { RelativeNorm([]float64{1}, []float64{1, 2}) })
}

func TestVectorHelpers(t *testing.T) {
	assert.True(t, IsNan([]float64{1, math.NaN()}))
	assert.False(t, IsNan([]float64{1, 2}))
	var buf bytes.Buffer
	require.NoError(t, DumpVector(&buf, []float64{1.5, -2}))
	assert.Equal(t, "1.5\n-2\n", buf.String())
}
