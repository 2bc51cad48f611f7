// Package spc implements the statistical process control pipeline: subgroup
// partitioning, X-bar/Range control limits, Cp/Cpk process-capability
// indices, and square-root-rule histogram binning. All stages are pure
// functions over in-memory slices; Analyze composes them into one result
// bundle per invocation, sharing no state across calls.
package spc

import (
	"fmt"

	"github.com/google/uuid"
)

// Options are the caller-chosen analysis parameters.
type Options struct {
	SubgroupSize int
	LSL          float64
	USL          float64
}

// Point is one chart-ready sample. For the X-bar and Range series X is the
// 1-based subgroup index.
type Point struct {
	X float64
	Y float64
}

// Result is the read-only bundle one analysis run produces. Chart renderers
// and report templating consume it as-is and must not re-derive statistics,
// so displayed charts cannot drift from the summary numbers.
type Result struct {
	RunID   string
	Options Options

	Subgroups  []Subgroup
	Limits     ControlLimits
	Capability CapabilityMetrics
	Histogram  Histogram

	XBarSeries  []Point
	RangeSeries []Point
}

// Analyze runs the full pipeline over a flat measurement sequence. Inputs are
// validated up front; on any error no partial result is returned. Every
// invocation yields fresh values, never shared buffers.
func Analyze(measurements []float64, opts Options) (*Result, error) {
	if opts.SubgroupSize < MinSubgroupSize || opts.SubgroupSize > MaxSubgroupSize {
		return nil, fmt.Errorf("%w: subgroup size %d outside supported range %d-%d",
			ErrInvalidConfiguration, opts.SubgroupSize, MinSubgroupSize, MaxSubgroupSize)
	}
	if opts.USL <= opts.LSL {
		return nil, fmt.Errorf("%w: USL (%g) must be greater than LSL (%g)",
			ErrInvalidConfiguration, opts.USL, opts.LSL)
	}
	if len(measurements) == 0 {
		return nil, fmt.Errorf("%w: empty measurement sequence", ErrInsufficientData)
	}

	subgroups, err := BuildSubgroups(measurements, opts.SubgroupSize)
	if err != nil {
		return nil, err
	}
	if len(subgroups) == 0 {
		return nil, fmt.Errorf("%w: %d measurements form no complete subgroup of size %d",
			ErrInsufficientData, len(measurements), opts.SubgroupSize)
	}

	limits, err := ComputeControlLimits(subgroups, opts.SubgroupSize)
	if err != nil {
		return nil, err
	}

	capability, err := ComputeCapability(limits.RangeMean, limits.XBarMean, opts.LSL, opts.USL, opts.SubgroupSize)
	if err != nil {
		return nil, err
	}

	histogram, err := ComputeHistogram(measurements)
	if err != nil {
		return nil, err
	}

	xBarSeries := make([]Point, len(subgroups))
	rangeSeries := make([]Point, len(subgroups))
	for i, sg := range subgroups {
		xBarSeries[i] = Point{X: float64(i + 1), Y: sg.Mean}
		rangeSeries[i] = Point{X: float64(i + 1), Y: sg.Range}
	}

	return &Result{
		RunID:       uuid.NewString(),
		Options:     opts,
		Subgroups:   subgroups,
		Limits:      limits,
		Capability:  capability,
		Histogram:   histogram,
		XBarSeries:  xBarSeries,
		RangeSeries: rangeSeries,
	}, nil
}
