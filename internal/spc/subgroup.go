package spc

import (
	"fmt"
	"math"
)

// Subgroup is a fixed-size consecutive batch of measurements treated as one
// sampling unit for control-chart purposes.
type Subgroup struct {
	Values []float64
	Mean   float64
	Range  float64
}

// BuildSubgroups partitions measurements into consecutive non-overlapping
// windows of exactly size elements, in input order. A trailing partial window
// is dropped, not padded; that is the defined policy for ragged input.
// Returns an empty slice when there are fewer than size measurements.
func BuildSubgroups(measurements []float64, size int) ([]Subgroup, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: subgroup size must be >= 1, got %d", ErrInvalidConfiguration, size)
	}

	n := len(measurements) / size
	subgroups := make([]Subgroup, 0, n)
	for i := 0; i+size <= len(measurements); i += size {
		window := measurements[i : i+size]
		values := make([]float64, size)
		copy(values, window)
		subgroups = append(subgroups, Subgroup{
			Values: values,
			Mean:   mean(values),
			Range:  spread(values),
		})
	}
	return subgroups, nil
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// spread returns max - min.
func spread(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	minVal, maxVal := data[0], data[0]
	for _, v := range data[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal - minVal
}

// round4 rounds to 4 decimal places. Derived statistics are rounded at
// computation time so every consumer sees identical values.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
