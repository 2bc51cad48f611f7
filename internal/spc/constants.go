package spc

import "fmt"

// ControlConstants holds the sample-size-dependent factors used to derive
// control limits from subgroup ranges. D2 is carried for completeness but the
// capability calculation uses d2Approx instead (see capability.go).
type ControlConstants struct {
	A2 float64
	D3 float64
	D4 float64
	D2 float64
}

// controlConstantsBySize is keyed by subgroup size. Only sizes 1 through 5
// are defined; anything else is a configuration error, never a silent
// fallback to the size-1 row.
var controlConstantsBySize = map[int]ControlConstants{
	1: {A2: 1.880, D3: 0, D4: 3.267, D2: 1.128},
	2: {A2: 1.023, D3: 0, D4: 2.574, D2: 1.693},
	3: {A2: 0.729, D3: 0, D4: 2.282, D2: 2.059},
	4: {A2: 0.577, D3: 0, D4: 2.114, D2: 2.326},
	5: {A2: 0.483, D3: 0, D4: 2.004, D2: 2.534},
}

// MinSubgroupSize and MaxSubgroupSize bound the supported constants table.
const (
	MinSubgroupSize = 1
	MaxSubgroupSize = 5
)

// ConstantsFor returns the control constants for the given subgroup size.
func ConstantsFor(size int) (ControlConstants, error) {
	c, ok := controlConstantsBySize[size]
	if !ok {
		return ControlConstants{}, fmt.Errorf("%w: no control constants for subgroup size %d (supported %d-%d)",
			ErrInvalidConfiguration, size, MinSubgroupSize, MaxSubgroupSize)
	}
	return c, nil
}
