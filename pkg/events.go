package coincidence

import "fmt"

// Geometry selects the coordinate system of a hit table and the histograms
// built from it.
type Geometry int

const (
	Cartesian Geometry = iota
	Radial
)

func (g Geometry) String() string {
	switch g {
	case Cartesian:
		return "cartesian"
	case Radial:
		return "radial"
	default:
		return "unknown"
	}
}

func ParseGeometry(s string) (Geometry, error) {
	switch s {
	case "cartesian":
		return Cartesian, nil
	case "radial":
		return Radial, nil
	}
	return Cartesian, fmt.Errorf("unknown geometry %q", s)
}

// HitTable is a column-oriented table of detector hits, one row per hit.
// Shots must be ascending, not necessarily strictly since several hits can
// share a shot. Cartesian tables fill X and Y, radial tables fill R.
// The analysis never mutates a table.
type HitTable struct {
	Shots []int
	X     []float64
	Y     []float64
	R     []float64
}

func (t *HitTable) NumHits() int {
	return len(t.Shots)
}

// FirstShot and LastShot require a non-empty table.
func (t *HitTable) FirstShot() int {
	return t.Shots[0]
}

func (t *HitTable) LastShot() int {
	return t.Shots[len(t.Shots)-1]
}

// ShotSpan is the number of shot indices covered by the table, endpoints
// included.
func (t *HitTable) ShotSpan() int {
	return t.LastShot() - t.FirstShot() + 1
}

// ValidateShots checks only the ascending-shot invariant, for tables whose
// coordinates are never bucketed.
func (t *HitTable) ValidateShots(name string) error {
	for i := 1; i < len(t.Shots); i++ {
		if t.Shots[i] < t.Shots[i-1] {
			return &ErrUnsortedTable{Table: name, Index: i}
		}
	}
	return nil
}

// Validate checks the ascending-shot invariant the matching contracts rely
// on and that the coordinate columns for the geometry match the shot column
// length. An empty table is valid here; callers that need records check
// separately.
func (t *HitTable) Validate(name string, geometry Geometry) error {
	if err := t.ValidateShots(name); err != nil {
		return err
	}
	n := len(t.Shots)
	switch geometry {
	case Cartesian:
		if len(t.X) != n {
			return &ErrColumnMismatch{Table: name, Column: "x", Want: n, Got: len(t.X)}
		}
		if len(t.Y) != n {
			return &ErrColumnMismatch{Table: name, Column: "y", Want: n, Got: len(t.Y)}
		}
	case Radial:
		if len(t.R) != n {
			return &ErrColumnMismatch{Table: name, Column: "r", Want: n, Got: len(t.R)}
		}
	}
	return nil
}
