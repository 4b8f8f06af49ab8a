package coincidence

import "fmt"

// HistogramSpec fixes the geometry, bin edges and boundary policy shared by
// every histogram of one analysis. Cartesian mode uses X and Y, radial mode
// uses R.
type HistogramSpec struct {
	Geometry Geometry
	X        BinEdges
	Y        BinEdges
	R        BinEdges
	Boundary BoundaryPolicy
}

func (s HistogramSpec) Validate() error {
	switch s.Geometry {
	case Cartesian:
		if err := s.X.Validate("x"); err != nil {
			return err
		}
		return s.Y.Validate("y")
	case Radial:
		return s.R.Validate("r")
	}
	return fmt.Errorf("unknown geometry %d", s.Geometry)
}

// extended returns the spec with every axis grown by one trailing bin.
func (s HistogramSpec) extended() HistogramSpec {
	out := s
	switch s.Geometry {
	case Cartesian:
		out.X = s.X.extended()
		out.Y = s.Y.extended()
	case Radial:
		out.R = s.R.extended()
	}
	return out
}

// SpecFromConfiguration builds the histogram spec selected by the loaded
// configuration.
func SpecFromConfiguration() (HistogramSpec, error) {
	geometry, err := ParseGeometry(configuration.Geometry)
	if err != nil {
		return HistogramSpec{}, err
	}
	policy, err := ParseBoundaryPolicy(configuration.BoundaryPolicy)
	if err != nil {
		return HistogramSpec{}, err
	}
	spec := HistogramSpec{Geometry: geometry, Boundary: policy}
	switch geometry {
	case Cartesian:
		spec.X = UniformEdges(configuration.BinRangeX.Min, configuration.BinRangeX.Max, configuration.BinRangeX.Bins)
		spec.Y = UniformEdges(configuration.BinRangeY.Min, configuration.BinRangeY.Max, configuration.BinRangeY.Bins)
	case Radial:
		spec.R = UniformEdges(configuration.BinRangeR.Min, configuration.BinRangeR.Max, configuration.BinRangeR.Bins)
	}
	return spec, spec.Validate()
}

// Histogram holds integer counts, one cell per bin. Cartesian counts are
// stored x-major, radial histograms are a single row of ny=1.
type Histogram struct {
	Spec   HistogramSpec
	Counts []int64
	nx, ny int
}

func NewHistogram(spec HistogramSpec) (*Histogram, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	h := &Histogram{Spec: spec}
	switch spec.Geometry {
	case Cartesian:
		h.nx = spec.X.NumBins()
		h.ny = spec.Y.NumBins()
	case Radial:
		h.nx = spec.R.NumBins()
		h.ny = 1
	}
	h.Counts = make([]int64, h.nx*h.ny)
	return h, nil
}

func (h *Histogram) Nx() int { return h.nx }
func (h *Histogram) Ny() int { return h.ny }

func (h *Histogram) At(ix, iy int) int64 {
	return h.Counts[ix*h.ny+iy]
}

func (h *Histogram) Total() int64 {
	var total int64
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// add buckets record i of the table under the spec's boundary policy.
// Nothing is counted when a coordinate is rejected.
func (h *Histogram) add(t *HitTable, i int) error {
	switch h.Spec.Geometry {
	case Cartesian:
		ix, err := h.Spec.X.locate("x", t.X[i], h.Spec.Boundary)
		if err != nil {
			return err
		}
		iy, err := h.Spec.Y.locate("y", t.Y[i], h.Spec.Boundary)
		if err != nil {
			return err
		}
		h.Counts[ix*h.ny+iy]++
	case Radial:
		ir, err := h.Spec.R.locate("r", t.R[i], h.Spec.Boundary)
		if err != nil {
			return err
		}
		h.Counts[ir]++
	}
	return nil
}

// Spectrum is a real-valued result with the same shape as the histogram it
// derives from. Values can be negative depending on the estimator.
type Spectrum struct {
	Spec   HistogramSpec
	Values []float64
	nx, ny int
}

func newSpectrum(h *Histogram) *Spectrum {
	return &Spectrum{
		Spec:   h.Spec,
		Values: make([]float64, len(h.Counts)),
		nx:     h.nx,
		ny:     h.ny,
	}
}

func (s *Spectrum) Nx() int { return s.nx }
func (s *Spectrum) Ny() int { return s.ny }

func (s *Spectrum) At(ix, iy int) float64 {
	return s.Values[ix*s.ny+iy]
}

// BackgroundPass histograms the electron hits whose shot has no ion hit and
// counts the distinct shots contributing, deduplicated through the
// ascending order rather than a shot set.
func BackgroundPass(electrons, ions *HitTable, spec HistogramSpec) (int, *Histogram, error) {
	if err := validateTables(electrons, ions, spec.Geometry); err != nil {
		return 0, nil, err
	}
	return backgroundPass(electrons, ions, spec)
}

// MeasurementPass histograms, for every distinct ion shot, the electron
// hits sharing that shot, and counts the ion shots with a non-empty match.
// A shot with several ion hits is matched once.
func MeasurementPass(electrons, ions *HitTable, spec HistogramSpec) (int, *Histogram, error) {
	if err := validateTables(electrons, ions, spec.Geometry); err != nil {
		return 0, nil, err
	}
	return measurementPass(electrons, ions, spec)
}

// validateTables runs the entry checks shared by the public passes and the
// orchestrators. Ion coordinates are never bucketed, only the shot column
// matters there.
func validateTables(electrons, ions *HitTable, geometry Geometry) error {
	if electrons.NumHits() == 0 {
		return &ErrEmptyTable{Table: "electron"}
	}
	if err := electrons.Validate("electron", geometry); err != nil {
		return err
	}
	return ions.ValidateShots("ion")
}

func backgroundPass(electrons, ions *HitTable, spec HistogramSpec) (int, *Histogram, error) {
	hist, err := NewHistogram(spec)
	if err != nil {
		return 0, nil, err
	}
	shots := 0
	lastCounted := -1
	for i, shot := range electrons.Shots {
		if shotPresent(ions.Shots, shot) {
			continue
		}
		if err := hist.add(electrons, i); err != nil {
			return 0, nil, err
		}
		if shot > lastCounted {
			shots++
			lastCounted = shot
		}
	}
	return shots, hist, nil
}

func measurementPass(electrons, ions *HitTable, spec HistogramSpec) (int, *Histogram, error) {
	hist, err := NewHistogram(spec)
	if err != nil {
		return 0, nil, err
	}
	shots := 0
	lastSeen := -1
	for _, shot := range ions.Shots {
		if shot <= lastSeen {
			continue
		}
		lastSeen = shot
		lo, hi := shotRange(electrons.Shots, shot)
		if lo == hi {
			continue
		}
		for i := lo; i < hi; i++ {
			if err := hist.add(electrons, i); err != nil {
				return 0, nil, err
			}
		}
		shots++
	}
	return shots, hist, nil
}
