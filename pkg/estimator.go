package coincidence

import "gonum.org/v1/gonum/stat/distuv"

// CountDistribution is a discrete probability distribution over
// non-negative integer counts with a known mean. distuv.Poisson satisfies
// it, which is the default background model of this analysis.
type CountDistribution interface {
	Prob(k float64) float64
	CDF(k float64) float64
	Mean() float64
}

// PoissonBackground builds the default background count distribution with
// the given mean.
func PoissonBackground(mean float64) CountDistribution {
	return distuv.Poisson{Lambda: mean}
}

// ExpectedSignal returns the statistically expected non-background part of
// a measured count given the distribution of the background count:
//
//	measured - sum_{b=0..measured} b*Prob(b) / CDF(measured)
//
// The estimate never exceeds the measured count, and a zero measurement
// estimates zero. A cumulative probability of zero at the measured count
// leaves the estimate undefined and fails with ErrVanishingCDF instead of
// returning NaN.
func ExpectedSignal(background CountDistribution, measured int64) (float64, error) {
	// A zero-mean background is a point mass at zero and the whole
	// measurement is signal. The Poisson pdf is NaN there (0*log 0).
	if background.Mean() == 0 {
		return float64(measured), nil
	}
	cdf := background.CDF(float64(measured))
	if cdf == 0 {
		return 0, &ErrVanishingCDF{Mean: background.Mean(), Measured: measured}
	}
	var weighted float64
	for b := int64(0); b <= measured; b++ {
		weighted += float64(b) * background.Prob(float64(b))
	}
	return float64(measured) - weighted/cdf, nil
}
