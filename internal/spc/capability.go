package spc

import (
	"fmt"
	"math"
)

// CapabilityMetrics is the derived process-capability snapshot. The Pp family
// mirrors the Cp family numerically: no separate overall sigma is estimated
// from the individual measurements, so StdDevOverall equals StdDevWithin and
// Pp/Ppu/Ppl/Ppk alias Cp/Cpu/Cpl/Cpk. All fields rounded to 4 decimal
// places.
type CapabilityMetrics struct {
	XBar          float64
	StdDevOverall float64
	StdDevWithin  float64
	MovingRange   float64

	Cp  float64
	Cpu float64
	Cpl float64
	Cpk float64

	Pp  float64
	Ppu float64
	Ppl float64
	Ppk float64

	LSL    float64
	USL    float64
	Target float64
}

// d2Approx stands in for the tabulated d2 control-chart constant: exact for
// size 1 (1.128), sqrt(size) otherwise. The sqrt form is only a rough
// approximation of the textbook values for sizes 2-5; it is kept for
// behavioral compatibility with the upstream reports.
func d2Approx(size int) float64 {
	if size == 1 {
		return 1.128
	}
	return math.Sqrt(float64(size))
}

// ComputeCapability derives the process standard deviation from the mean
// subgroup range and computes Cp/Cpk (and their Pp/Ppk mirrors) against the
// specification limits.
func ComputeCapability(rangeMean, xBarMean, lsl, usl float64, size int) (CapabilityMetrics, error) {
	if size < MinSubgroupSize || size > MaxSubgroupSize {
		return CapabilityMetrics{}, fmt.Errorf("%w: subgroup size %d outside supported range %d-%d",
			ErrInvalidConfiguration, size, MinSubgroupSize, MaxSubgroupSize)
	}
	if usl <= lsl {
		return CapabilityMetrics{}, fmt.Errorf("%w: USL (%g) must be greater than LSL (%g)",
			ErrInvalidConfiguration, usl, lsl)
	}

	stdDev := rangeMean / d2Approx(size)

	cp := (usl - lsl) / (6 * stdDev)
	cpu := (usl - xBarMean) / (3 * stdDev)
	cpl := (xBarMean - lsl) / (3 * stdDev)
	cpk := math.Min(cpu, cpl)

	m := CapabilityMetrics{
		XBar:          round4(xBarMean),
		StdDevOverall: round4(stdDev),
		StdDevWithin:  round4(stdDev),
		MovingRange:   round4(rangeMean),
		Cp:            round4(cp),
		Cpu:           round4(cpu),
		Cpl:           round4(cpl),
		Cpk:           round4(cpk),
		LSL:           lsl,
		USL:           usl,
		Target:        round4((usl + lsl) / 2),
	}
	m.Pp, m.Ppu, m.Ppl, m.Ppk = m.Cp, m.Cpu, m.Cpl, m.Cpk
	return m, nil
}
