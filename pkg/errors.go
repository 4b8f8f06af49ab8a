package coincidence

import "fmt"

// ErrUnsortedTable reports an event table whose shot column is not in
// ascending order. Index points at the first offending record.
type ErrUnsortedTable struct {
	Table string
	Index int
}

func (e *ErrUnsortedTable) Error() string {
	return fmt.Sprintf("%s table not sorted by shot at record %d", e.Table, e.Index)
}

// ErrEmptyTable reports a table with no records where at least one is required.
type ErrEmptyTable struct {
	Table string
}

func (e *ErrEmptyTable) Error() string {
	return fmt.Sprintf("%s table is empty", e.Table)
}

// ErrColumnMismatch reports a coordinate column whose length does not match
// the shot column, or a column missing for the configured geometry.
type ErrColumnMismatch struct {
	Table  string
	Column string
	Want   int
	Got    int
}

func (e *ErrColumnMismatch) Error() string {
	return fmt.Sprintf("%s table column %q has %d entries, want %d", e.Table, e.Column, e.Got, e.Want)
}

// ErrCoordOutOfRange reports a coordinate outside the configured bin edges
// under the reject boundary policy.
type ErrCoordOutOfRange struct {
	Axis  string
	Value float64
	Low   float64
	High  float64
}

func (e *ErrCoordOutOfRange) Error() string {
	return fmt.Sprintf("coordinate %s=%v outside bin range [%v, %v)", e.Axis, e.Value, e.Low, e.High)
}

// ErrBadEdges reports a bin-edge sequence that is too short or not strictly
// ascending.
type ErrBadEdges struct {
	Axis   string
	Reason string
}

func (e *ErrBadEdges) Error() string {
	return fmt.Sprintf("invalid bin edges for axis %s: %s", e.Axis, e.Reason)
}

// ErrZeroShots reports a shot population with zero members where a ratio
// requires a non-zero denominator.
type ErrZeroShots struct {
	Population string
}

func (e *ErrZeroShots) Error() string {
	return fmt.Sprintf("zero %s shots, ratio undefined", e.Population)
}

// ErrVanishingCDF reports a background distribution whose cumulative
// probability at the measured count is zero, leaving the signal estimate
// undefined.
type ErrVanishingCDF struct {
	Mean     float64
	Measured int64
}

func (e *ErrVanishingCDF) Error() string {
	return fmt.Sprintf("background CDF vanishes at count %d (mean %v)", e.Measured, e.Mean)
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrMissingDataset represents an error when opening a group or dataset
// inside an HDF5 file.
type ErrMissingDataset struct {
	Filename string
	Path     string
	Err      error
}

func (e *ErrMissingDataset) Error() string {
	return fmt.Sprintf("error opening dataset %q in file %q: %v", e.Path, e.Filename, e.Err)
}

func (e *ErrMissingDataset) Unwrap() error { return e.Err }

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}
