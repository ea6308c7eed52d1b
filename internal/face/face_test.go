package face

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformDescriptor(v float64) []float64 {
	d := make([]float64, DescriptorLength)
	for i := range d {
		d[i] = v
	}
	return d
}

func TestIsValidDescriptor(t *testing.T) {
	assert.True(t, IsValidDescriptor(uniformDescriptor(0.5)))
	assert.False(t, IsValidDescriptor(nil))
	assert.False(t, IsValidDescriptor(make([]float64, 127)))

	bad := uniformDescriptor(0.5)
	bad[42] = math.NaN()
	assert.False(t, IsValidDescriptor(bad))
}

func TestCompareDescriptors_Identical(t *testing.T) {
	d := uniformDescriptor(0.3)
	match, distance := CompareDescriptors(d, d, DefaultThreshold)
	assert.True(t, match)
	assert.Equal(t, 0.0, distance)
}

func TestCompareDescriptors_FarApart(t *testing.T) {
	// Selisih 0.1 per dimensi -> jarak sqrt(128*0.01) ~ 1.131
	match, distance := CompareDescriptors(uniformDescriptor(0.0), uniformDescriptor(0.1), DefaultThreshold)
	assert.False(t, match)
	assert.InDelta(t, 1.131, distance, 0.001)
}

func TestCompareDescriptors_InvalidInput(t *testing.T) {
	match, distance := CompareDescriptors(nil, uniformDescriptor(0.1), DefaultThreshold)
	assert.False(t, match)
	assert.True(t, math.IsInf(distance, 1))
}
