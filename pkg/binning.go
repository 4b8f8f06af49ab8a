package coincidence

import (
	"fmt"
	"math"
	"sort"
)

// BoundaryPolicy decides what happens to a coordinate below the first edge
// or at and above the last one.
type BoundaryPolicy int

const (
	// BoundaryReject fails the accumulation with ErrCoordOutOfRange.
	BoundaryReject BoundaryPolicy = iota
	// BoundaryClamp maps out-of-range coordinates to the nearest bin.
	BoundaryClamp
)

func (p BoundaryPolicy) String() string {
	switch p {
	case BoundaryReject:
		return "reject"
	case BoundaryClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch s {
	case "reject":
		return BoundaryReject, nil
	case "clamp":
		return BoundaryClamp, nil
	}
	return BoundaryReject, fmt.Errorf("unknown boundary policy %q", s)
}

// BinEdges is a strictly ascending sequence of bin edges. N edges define
// N-1 right-open bins [e[i], e[i+1]). Edges are immutable once a histogram
// is built on them.
type BinEdges []float64

// UniformEdges builds bins+1 equally spaced edges covering [min, max].
// A bin count below one yields edges Validate rejects.
func UniformEdges(min, max float64, bins int) BinEdges {
	if bins < 1 {
		return nil
	}
	edges := make(BinEdges, bins+1)
	step := (max - min) / float64(bins)
	for i := range edges {
		edges[i] = min + float64(i)*step
	}
	edges[bins] = max
	return edges
}

func (e BinEdges) NumBins() int {
	return len(e) - 1
}

// Centers returns the midpoint of every bin.
func (e BinEdges) Centers() []float64 {
	centers := make([]float64, e.NumBins())
	for i := range centers {
		centers[i] = (e[i] + e[i+1]) / 2
	}
	return centers
}

func (e BinEdges) Validate(axis string) error {
	if len(e) < 2 {
		return &ErrBadEdges{Axis: axis, Reason: "need at least two edges"}
	}
	for i := 1; i < len(e); i++ {
		if e[i] <= e[i-1] {
			return &ErrBadEdges{Axis: axis, Reason: fmt.Sprintf("not strictly ascending at edge %d", i)}
		}
	}
	return nil
}

// locate maps a value to its right-open bin, the index of the last edge
// less than or equal to the value. A value exactly on an edge belongs to
// the bin starting there.
func (e BinEdges) locate(axis string, v float64, policy BoundaryPolicy) (int, error) {
	// NaN compares false against every edge and cannot be clamped to a bin.
	if math.IsNaN(v) {
		return 0, &ErrCoordOutOfRange{Axis: axis, Value: v, Low: e[0], High: e[len(e)-1]}
	}
	if v < e[0] || v >= e[len(e)-1] {
		if policy == BoundaryClamp {
			if v < e[0] {
				return 0, nil
			}
			return len(e) - 2, nil
		}
		return 0, &ErrCoordOutOfRange{Axis: axis, Value: v, Low: e[0], High: e[len(e)-1]}
	}
	i := sort.SearchFloat64s(e, v)
	if e[i] != v {
		i--
	}
	return i, nil
}

// extended returns the edges with one extra trailing step appended, so a
// hit at exactly the final edge lands in the extra bin instead of going
// through the boundary policy.
func (e BinEdges) extended() BinEdges {
	step := e[len(e)-1] - e[len(e)-2]
	out := make(BinEdges, len(e)+1)
	copy(out, e)
	out[len(e)] = e[len(e)-1] + step
	return out
}
