package coincidence

import (
	"fmt"
	"sort"

	"github.com/jmbenlloch/go-hdf5"
)

// Reader loads shot-indexed hit tables from a DAQ HDF5 file. The expected
// layout is /Run/runInfo plus per-column datasets under /Hits/electrons and
// /Hits/ions: shot as int64, coordinates as float64.
type Reader struct {
	File     *hdf5.File
	Filename string
}

func OpenReader(filename string) (*Reader, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	return &Reader{File: f, Filename: filename}, nil
}

func (r *Reader) Close() error {
	return r.File.Close()
}

// RunNumber reads the run catalog key stored with the file.
func (r *Reader) RunNumber() (int32, error) {
	group, err := r.File.OpenGroup("Run")
	if err != nil {
		return 0, &ErrMissingDataset{Filename: r.Filename, Path: "Run", Err: err}
	}
	defer group.Close()
	dset, err := group.OpenDataset("runInfo")
	if err != nil {
		return 0, &ErrMissingDataset{Filename: r.Filename, Path: "Run/runInfo", Err: err}
	}
	defer dset.Close()

	n, err := datasetLength(dset)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, &ErrMissingDataset{Filename: r.Filename, Path: "Run/runInfo", Err: fmt.Errorf("empty table")}
	}
	rows := make([]RunInfoHDF5, n)
	if err := dset.Read(&rows); err != nil {
		return 0, fmt.Errorf("error reading run info from %q: %w", r.Filename, err)
	}
	return rows[0].run_number, nil
}

// LoadTables reads both species and applies the configured shot trimming.
// Ion coordinates are never bucketed, only their shot column is read.
func (r *Reader) LoadTables(geometry Geometry) (*HitTable, *HitTable, error) {
	electrons, err := r.ReadHits("electrons", geometry)
	if err != nil {
		return nil, nil, err
	}
	ions, err := r.ReadShots("ions")
	if err != nil {
		return nil, nil, err
	}
	electrons, ions = TrimShots(electrons, ions, configuration.SkipShots, configuration.MaxShots)
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Loaded %d electron hits, %d ion hits from %s",
			electrons.NumHits(), ions.NumHits(), r.Filename)
		logger.Info(message, "reader")
	}
	return electrons, ions, nil
}

// ReadHits loads the shot column and the coordinate columns the geometry
// needs for one species.
func (r *Reader) ReadHits(species string, geometry Geometry) (*HitTable, error) {
	group, err := r.openSpecies(species)
	if err != nil {
		return nil, err
	}
	defer group.Close()

	table := &HitTable{}
	table.Shots, err = r.readShotColumn(group, species)
	if err != nil {
		return nil, err
	}
	switch geometry {
	case Cartesian:
		table.X, err = r.readFloatColumn(group, species, "x")
		if err != nil {
			return nil, err
		}
		table.Y, err = r.readFloatColumn(group, species, "y")
		if err != nil {
			return nil, err
		}
	case Radial:
		table.R, err = r.readFloatColumn(group, species, "r")
		if err != nil {
			return nil, err
		}
	}
	return table, nil
}

// ReadShots loads only the shot column of one species.
func (r *Reader) ReadShots(species string) (*HitTable, error) {
	group, err := r.openSpecies(species)
	if err != nil {
		return nil, err
	}
	defer group.Close()

	table := &HitTable{}
	table.Shots, err = r.readShotColumn(group, species)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *Reader) openSpecies(species string) (*hdf5.Group, error) {
	hits, err := r.File.OpenGroup("Hits")
	if err != nil {
		return nil, &ErrMissingDataset{Filename: r.Filename, Path: "Hits", Err: err}
	}
	defer hits.Close()
	group, err := hits.OpenGroup(species)
	if err != nil {
		return nil, &ErrMissingDataset{Filename: r.Filename, Path: "Hits/" + species, Err: err}
	}
	return group, nil
}

func (r *Reader) readShotColumn(group *hdf5.Group, species string) ([]int, error) {
	path := "Hits/" + species + "/shot"
	dset, err := group.OpenDataset("shot")
	if err != nil {
		return nil, &ErrMissingDataset{Filename: r.Filename, Path: path, Err: err}
	}
	defer dset.Close()

	n, err := datasetLength(dset)
	if err != nil {
		return nil, err
	}
	raw := make([]int64, n)
	if n > 0 {
		if err := dset.Read(&raw); err != nil {
			return nil, fmt.Errorf("error reading %q: %w", path, err)
		}
	}
	shots := make([]int, n)
	for i, s := range raw {
		shots[i] = int(s)
	}
	return shots, nil
}

func (r *Reader) readFloatColumn(group *hdf5.Group, species string, name string) ([]float64, error) {
	path := "Hits/" + species + "/" + name
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, &ErrMissingDataset{Filename: r.Filename, Path: path, Err: err}
	}
	defer dset.Close()

	n, err := datasetLength(dset)
	if err != nil {
		return nil, err
	}
	values := make([]float64, n)
	if n > 0 {
		if err := dset.Read(&values); err != nil {
			return nil, fmt.Errorf("error reading %q: %w", path, err)
		}
	}
	return values, nil
}

func datasetLength(dset *hdf5.Dataset) (int, error) {
	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return 0, err
	}
	if len(dims) == 0 {
		return 0, nil
	}
	return int(dims[0]), nil
}

// TrimShots restricts both tables to a window of distinct shot indices
// taken across both species: the first skip distinct shots are dropped and
// at most max are kept. max <= 0 keeps everything past the skip.
func TrimShots(electrons, ions *HitTable, skip, max int) (*HitTable, *HitTable) {
	if skip <= 0 && max <= 0 {
		return electrons, ions
	}
	union := distinctShotUnion(electrons.Shots, ions.Shots)
	if skip >= len(union) {
		return &HitTable{}, &HitTable{}
	}
	window := union[skip:]
	if max > 0 && max < len(window) {
		window = window[:max]
	}
	lo, hi := window[0], window[len(window)-1]
	return sliceTable(electrons, lo, hi), sliceTable(ions, lo, hi)
}

func distinctShotUnion(a, b []int) []int {
	union := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var next int
		switch {
		case i >= len(a):
			next = b[j]
			j++
		case j >= len(b):
			next = a[i]
			i++
		case a[i] <= b[j]:
			next = a[i]
			i++
		default:
			next = b[j]
			j++
		}
		if len(union) == 0 || next != union[len(union)-1] {
			union = append(union, next)
		}
	}
	return union
}

// sliceTable restricts a table to shots in [lo, hi] without copying the
// column data.
func sliceTable(t *HitTable, lo, hi int) *HitTable {
	start := sort.SearchInts(t.Shots, lo)
	end := sort.SearchInts(t.Shots, hi+1)
	out := &HitTable{Shots: t.Shots[start:end]}
	if t.X != nil {
		out.X = t.X[start:end]
	}
	if t.Y != nil {
		out.Y = t.Y[start:end]
	}
	if t.R != nil {
		out.R = t.R[start:end]
	}
	return out
}
