package services

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDistance(t *testing.T) {
	got, err := NormalizeDistance(500)
	require.NoError(t, err)
	assert.Equal(t, 500000.0, got, "values below 1000 read as kilometers")

	got, err = NormalizeDistance(5000)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, got, "values of 1000+ read as meters")

	got, err = NormalizeDistance(999.9)
	require.NoError(t, err)
	assert.Equal(t, 999900.0, got)

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NormalizeDistance(bad)
		assert.ErrorIs(t, err, ErrInvalidDistance, "input %v must be rejected", bad)
	}
}

func TestJitterDistance_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const base, ratio = 10000.0, 0.15

	lo := math.Round(base * (1 - ratio))
	hi := math.Round(base * (1 + ratio))

	for i := 0; i < 2000; i++ {
		got, err := JitterDistance(rng, base, ratio)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, lo)
		assert.LessOrEqual(t, got, hi)
		assert.Equal(t, got, math.Trunc(got), "jitter output must be whole meters")
	}
}

func TestJitterDistance_RejectsInvalidBase(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, bad := range []float64{0, -500, math.NaN(), math.Inf(1)} {
		_, err := JitterDistance(rng, bad, 0.15)
		assert.ErrorIs(t, err, ErrInvalidDistance)
	}
}

func TestJitterDistance_ZeroRatioIsExact(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got, err := JitterDistance(rng, 7500, 0)
	require.NoError(t, err)
	assert.Equal(t, 7500.0, got)
}
