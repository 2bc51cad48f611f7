package spc

import "fmt"

// ControlLimits is the derived X-bar / Range chart snapshot. All fields are
// rounded to 4 decimal places at computation time and never mutated.
type ControlLimits struct {
	XBarUCL   float64
	XBarLCL   float64
	XBarMean  float64
	RangeUCL  float64
	RangeLCL  float64
	RangeMean float64
}

// ComputeControlLimits derives X-bar and Range chart center lines and control
// limits from subgroup statistics using the tabulated constants for the given
// subgroup size.
//
// RangeLCL comes out as 0 for every tabulated size (D3 is 0 for sizes 1-5);
// callers must not assume that generalizes to larger subgroups.
func ComputeControlLimits(subgroups []Subgroup, size int) (ControlLimits, error) {
	consts, err := ConstantsFor(size)
	if err != nil {
		return ControlLimits{}, err
	}
	if len(subgroups) == 0 {
		return ControlLimits{}, fmt.Errorf("%w: no subgroups to derive control limits from", ErrInsufficientData)
	}

	var sumMeans, sumRanges float64
	for _, sg := range subgroups {
		sumMeans += sg.Mean
		sumRanges += sg.Range
	}
	xBarMean := sumMeans / float64(len(subgroups))
	rangeMean := sumRanges / float64(len(subgroups))

	return ControlLimits{
		XBarUCL:   round4(xBarMean + consts.A2*rangeMean),
		XBarLCL:   round4(xBarMean - consts.A2*rangeMean),
		XBarMean:  round4(xBarMean),
		RangeUCL:  round4(consts.D4 * rangeMean),
		RangeLCL:  round4(consts.D3 * rangeMean),
		RangeMean: round4(rangeMean),
	}, nil
}
