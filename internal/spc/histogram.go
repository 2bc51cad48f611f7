package spc

import (
	"fmt"
	"math"
)

// HistogramBin is one equal-width interval; X is the bin midpoint, Y the
// count of measurements falling in [binStart, binStart+binWidth), with the
// final bin closed on the right so the maximum value is not dropped.
type HistogramBin struct {
	X float64
	Y int
}

// Histogram is the binned distribution of the raw measurements.
type Histogram struct {
	Bins         []HistogramBin
	NumberOfBins int
	Min          float64
	Max          float64
	BinWidth     float64
}

// ComputeHistogram buckets measurements into equal-width bins sized by the
// square-root rule: numberOfBins = ceil(sqrt(n)), minimum 1.
//
// Zero-variance input (max == min) is a defined degenerate case: the bin
// count is unchanged but every observation lands in the first bin and the
// bin width is 0 rather than dividing by zero.
func ComputeHistogram(measurements []float64) (Histogram, error) {
	if len(measurements) == 0 {
		return Histogram{}, fmt.Errorf("%w: no measurements to bin", ErrInsufficientData)
	}

	numberOfBins := int(math.Ceil(math.Sqrt(float64(len(measurements)))))
	if numberOfBins < 1 {
		numberOfBins = 1
	}

	minVal, maxVal := measurements[0], measurements[0]
	for _, v := range measurements[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	binWidth := 0.0
	if maxVal > minVal {
		binWidth = (maxVal - minVal) / float64(numberOfBins)
	}

	counts := make([]int, numberOfBins)
	for _, v := range measurements {
		idx := 0
		if binWidth > 0 {
			idx = int(math.Floor((v - minVal) / binWidth))
			// Keep the maximum inside the last bin despite floating-point
			// rounding at the upper edge.
			if idx > numberOfBins-1 {
				idx = numberOfBins - 1
			}
		}
		counts[idx]++
	}

	bins := make([]HistogramBin, numberOfBins)
	for i := range bins {
		bins[i] = HistogramBin{
			X: minVal + float64(i)*binWidth + binWidth/2,
			Y: counts[i],
		}
	}

	return Histogram{
		Bins:         bins,
		NumberOfBins: numberOfBins,
		Min:          minVal,
		Max:          maxVal,
		BinWidth:     binWidth,
	}, nil
}
