package coincidence

import "fmt"

// EstimatorMode selects the background subtraction applied by Coincidence.
type EstimatorMode int

const (
	// ModeStatistical estimates the per-bin signal through the Poisson
	// background model.
	ModeStatistical EstimatorMode = iota
	// ModeSimple subtracts the ratio-scaled background counts directly.
	ModeSimple
)

func (m EstimatorMode) String() string {
	switch m {
	case ModeStatistical:
		return "statistical"
	case ModeSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// ModeFromConfiguration maps the simple_bg switch onto the estimator mode.
func ModeFromConfiguration() EstimatorMode {
	if configuration.SimpleBg {
		return ModeSimple
	}
	return ModeStatistical
}

// CoincidenceResult carries the corrected spectrum together with the
// histograms and shot counts it was derived from.
type CoincidenceResult struct {
	Spectrum         *Spectrum
	Background       *Histogram
	Measurement      *Histogram
	BackgroundShots  int
	MeasurementShots int
	Ratio            float64
	ShotSpan         int
}

type passOutcome struct {
	measurement bool
	shots       int
	hist        *Histogram
	err         error
}

// Coincidence runs the background and measurement passes as two concurrent
// tasks over the immutable input tables, joins them and applies the
// selected background subtraction, normalized by the electron shot span.
// Identical inputs produce identical results, no state survives the call.
func Coincidence(electrons, ions *HitTable, spec HistogramSpec, mode EstimatorMode) (*CoincidenceResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := validateTables(electrons, ions, spec.Geometry); err != nil {
		return nil, err
	}

	// Each pass writes only to its own fresh histogram and counter, the
	// tables are shared read-only. The join below is the only suspension
	// point.
	results := make(chan passOutcome, 2)
	go func() {
		shots, hist, err := backgroundPass(electrons, ions, spec)
		results <- passOutcome{shots: shots, hist: hist, err: err}
	}()
	go func() {
		shots, hist, err := measurementPass(electrons, ions, spec)
		results <- passOutcome{measurement: true, shots: shots, hist: hist, err: err}
	}()

	res := &CoincidenceResult{}
	for i := 0; i < 2; i++ {
		out := <-results
		if out.err != nil {
			return nil, out.err
		}
		if out.measurement {
			res.MeasurementShots = out.shots
			res.Measurement = out.hist
		} else {
			res.BackgroundShots = out.shots
			res.Background = out.hist
		}
	}

	if res.BackgroundShots == 0 {
		return nil, &ErrZeroShots{Population: "background"}
	}
	res.Ratio = float64(res.MeasurementShots) / float64(res.BackgroundShots)
	res.ShotSpan = electrons.ShotSpan()

	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("joined passes: %d background shots, %d measurement shots, ratio %.4f",
			res.BackgroundShots, res.MeasurementShots, res.Ratio)
		logger.Info(message, "coincidence")
	}

	spectrum := newSpectrum(res.Measurement)
	span := float64(res.ShotSpan)
	switch mode {
	case ModeSimple:
		for i, meas := range res.Measurement.Counts {
			spectrum.Values[i] = (float64(meas) - float64(res.Background.Counts[i])*res.Ratio) / span
		}
	case ModeStatistical:
		for i, meas := range res.Measurement.Counts {
			background := PoissonBackground(float64(res.Background.Counts[i]) * res.Ratio)
			estimate, err := ExpectedSignal(background, meas)
			if err != nil {
				return nil, err
			}
			spectrum.Values[i] = estimate / span
		}
	default:
		return nil, fmt.Errorf("unknown estimator mode %d", mode)
	}
	res.Spectrum = spectrum
	return res, nil
}
