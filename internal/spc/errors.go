package spc

import "errors"

// ErrInvalidConfiguration is returned when an analysis parameter is outside
// its supported domain (subgroup size, specification limits). No partial
// result accompanies it.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrInsufficientData is returned when there is nothing to compute from:
// an empty measurement sequence, or zero complete subgroups after
// partitioning. The caller decides how to present the empty state.
var ErrInsufficientData = errors.New("insufficient data")
