package coincidence

import "fmt"

// CovarianceResult carries the covariance-mapping spectrum together with
// the raw and matched histograms and the shot populations involved.
// IonShots is a diagnostic, the normalization uses MeasurementShots.
type CovarianceResult struct {
	Spectrum         *Spectrum
	Raw              *Histogram
	Measurement      *Histogram
	ElectronShots    int
	MeasurementShots int
	IonShots         int
}

// Covariance computes the alternative, non-coincidence-gated background
// subtraction: the matched electron rate per measurement shot minus the
// all-electron rate per electron shot. The raw histogram runs over the
// edges grown by one trailing bin so hits at exactly the final edge are
// kept; the subtraction covers the configured bins only.
//
// Cartesian mode clamps negative bins to zero, radial mode keeps them.
// TODO: confirm the clamp asymmetry with the analysis owners before
// unifying the two branches.
func Covariance(electrons, ions *HitTable, spec HistogramSpec) (*CovarianceResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := validateTables(electrons, ions, spec.Geometry); err != nil {
		return nil, err
	}

	raw, err := NewHistogram(spec.extended())
	if err != nil {
		return nil, err
	}
	electronShots := 0
	lastCounted := -1
	for i, shot := range electrons.Shots {
		if err := raw.add(electrons, i); err != nil {
			return nil, err
		}
		if shot > lastCounted {
			electronShots++
			lastCounted = shot
		}
	}

	measShots, meas, err := measurementPass(electrons, ions, spec)
	if err != nil {
		return nil, err
	}
	if measShots == 0 {
		return nil, &ErrZeroShots{Population: "measurement"}
	}

	res := &CovarianceResult{
		Raw:              raw,
		Measurement:      meas,
		ElectronShots:    electronShots,
		MeasurementShots: measShots,
		IonShots:         countIonShots(ions),
	}

	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("covariance pass: %d electron shots, %d measurement shots, %d ion shots",
			res.ElectronShots, res.MeasurementShots, res.IonShots)
		logger.Info(message, "covariance")
	}

	spectrum := newSpectrum(meas)
	for ix := 0; ix < meas.nx; ix++ {
		for iy := 0; iy < meas.ny; iy++ {
			v := float64(meas.At(ix, iy))/float64(measShots) - float64(raw.At(ix, iy))/float64(electronShots)
			if spec.Geometry == Cartesian && v < 0 {
				v = 0
			}
			spectrum.Values[ix*meas.ny+iy] = v
		}
	}
	res.Spectrum = spectrum
	return res, nil
}

// countIonShots histograms the ion shot indices over the full shot span,
// one bin per shot, and counts the occupied bins: the number of shots with
// at least one ion hit.
func countIonShots(ions *HitTable) int {
	if ions.NumHits() == 0 {
		return 0
	}
	perShot := make([]int64, ions.ShotSpan())
	first := ions.FirstShot()
	for _, shot := range ions.Shots {
		perShot[shot-first]++
	}
	occupied := 0
	for _, c := range perShot {
		if c > 0 {
			occupied++
		}
	}
	return occupied
}
