package spc

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeControlLimits_KnownValues(t *testing.T) {
	subgroups, err := BuildSubgroups([]float64{10, 12, 11, 13, 9, 11, 10, 12}, 2)
	require.NoError(t, err)

	limits, err := ComputeControlLimits(subgroups, 2)
	require.NoError(t, err)

	assert.InDelta(t, 11, limits.XBarMean, 1e-9)
	assert.InDelta(t, 2, limits.RangeMean, 1e-9)
	assert.InDelta(t, 13.046, limits.XBarUCL, 1e-9) // 11 + 1.023*2
	assert.InDelta(t, 8.954, limits.XBarLCL, 1e-9)  // 11 - 1.023*2
	assert.InDelta(t, 5.148, limits.RangeUCL, 1e-9) // 2.574*2
	assert.Zero(t, limits.RangeLCL)
}

func TestComputeControlLimits_RangeLCLZeroForAllSizes(t *testing.T) {
	measurements := []float64{5.1, 5.3, 4.9, 5.2, 5.0, 5.4, 4.8, 5.1, 5.2, 5.0}
	for size := 1; size <= 5; size++ {
		subgroups, err := BuildSubgroups(measurements, size)
		require.NoError(t, err)
		limits, err := ComputeControlLimits(subgroups, size)
		require.NoError(t, err)
		assert.Zerof(t, limits.RangeLCL, "size %d: D3 is 0 for all tabulated sizes", size)
	}
}

func TestComputeControlLimits_OrderInvariant(t *testing.T) {
	subgroups, err := BuildSubgroups([]float64{2.1, 2.4, 1.9, 2.2, 2.6, 2.0, 2.3, 2.1, 1.8, 2.5}, 2)
	require.NoError(t, err)

	want, err := ComputeControlLimits(subgroups, 2)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]Subgroup, len(subgroups))
		copy(shuffled, subgroups)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, err := ComputeControlLimits(shuffled, 2)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestComputeControlLimits_InvalidSize(t *testing.T) {
	subgroups := []Subgroup{{Mean: 1, Range: 0}}
	for _, size := range []int{0, -1, 6, 10} {
		_, err := ComputeControlLimits(subgroups, size)
		assert.ErrorIsf(t, err, ErrInvalidConfiguration, "size %d must be rejected, not defaulted", size)
	}
}

func TestComputeControlLimits_EmptySubgroups(t *testing.T) {
	_, err := ComputeControlLimits(nil, 2)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}
