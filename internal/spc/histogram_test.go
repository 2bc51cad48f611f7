package spc

import (
	"errors"
	"math"
	"testing"
)

func TestComputeHistogram_BinCountRule(t *testing.T) {
	measurements := make([]float64, 10)
	for i := range measurements {
		measurements[i] = float64(i)
	}
	h, err := ComputeHistogram(measurements)
	if err != nil {
		t.Fatalf("ComputeHistogram failed: %v", err)
	}
	if want := int(math.Ceil(math.Sqrt(10))); h.NumberOfBins != want {
		t.Fatalf("expected %d bins, got %d", want, h.NumberOfBins)
	}
	if len(h.Bins) != h.NumberOfBins {
		t.Fatalf("bin slice length %d disagrees with NumberOfBins %d", len(h.Bins), h.NumberOfBins)
	}
}

func TestComputeHistogram_CountsSumToInputSize(t *testing.T) {
	inputs := [][]float64{
		{1},
		{3.2, 3.2, 3.2},
		{10, 12, 11, 13, 9, 11, 10, 12},
		{0.001, 0.002, 0.0015, 0.0025, 0.0018, 0.0021, 0.0009},
	}
	for _, measurements := range inputs {
		h, err := ComputeHistogram(measurements)
		if err != nil {
			t.Fatalf("ComputeHistogram(%v) failed: %v", measurements, err)
		}
		total := 0
		for _, bin := range h.Bins {
			total += bin.Y
		}
		if total != len(measurements) {
			t.Errorf("counts sum to %d, expected %d for %v", total, len(measurements), measurements)
		}
	}
}

func TestComputeHistogram_MaximumStaysInLastBin(t *testing.T) {
	h, err := ComputeHistogram([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if err != nil {
		t.Fatalf("ComputeHistogram failed: %v", err)
	}
	if h.Bins[len(h.Bins)-1].Y == 0 {
		t.Fatalf("maximum value fell out of the last bin")
	}
}

func TestComputeHistogram_ZeroVariance(t *testing.T) {
	measurements := []float64{10, 10, 10, 10, 10, 10, 10, 10}
	h, err := ComputeHistogram(measurements)
	if err != nil {
		t.Fatalf("ComputeHistogram failed: %v", err)
	}
	if want := int(math.Ceil(math.Sqrt(8))); h.NumberOfBins != want {
		t.Fatalf("expected %d bins, got %d", want, h.NumberOfBins)
	}
	if h.Bins[0].Y != len(measurements) {
		t.Fatalf("expected all %d observations in the first bin, got %d", len(measurements), h.Bins[0].Y)
	}
	for i, bin := range h.Bins {
		if math.IsNaN(bin.X) || math.IsInf(bin.X, 0) {
			t.Fatalf("bin %d has non-finite midpoint %g", i, bin.X)
		}
	}
	if h.BinWidth != 0 {
		t.Fatalf("expected zero bin width for zero-variance input, got %g", h.BinWidth)
	}
}

func TestComputeHistogram_Midpoints(t *testing.T) {
	h, err := ComputeHistogram([]float64{0, 1, 2, 3}) // 2 bins of width 1.5
	if err != nil {
		t.Fatalf("ComputeHistogram failed: %v", err)
	}
	if h.NumberOfBins != 2 {
		t.Fatalf("expected 2 bins, got %d", h.NumberOfBins)
	}
	if math.Abs(h.Bins[0].X-0.75) > 1e-9 || math.Abs(h.Bins[1].X-2.25) > 1e-9 {
		t.Fatalf("unexpected midpoints %g, %g", h.Bins[0].X, h.Bins[1].X)
	}
}

func TestComputeHistogram_Empty(t *testing.T) {
	if _, err := ComputeHistogram(nil); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}
