package coincidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vanishing reports zero probability everywhere, which is what a Poisson
// CDF underflows to far below its mean.
type vanishing struct{}

func (vanishing) Prob(float64) float64 { return 0 }
func (vanishing) CDF(float64) float64  { return 0 }
func (vanishing) Mean() float64        { return 42 }

func TestExpectedSignalHandComputed(t *testing.T) {
	// Poisson with mean 1: Prob(0) = Prob(1) = 1/e, Prob(2) = 1/(2e).
	background := PoissonBackground(1)

	tests := []struct {
		name     string
		measured int64
		expected float64
	}{
		{name: "one count", measured: 1, expected: 0.5},
		{name: "two counts", measured: 2, expected: 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate, err := ExpectedSignal(background, tt.measured)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, estimate, 1e-12)
		})
	}
}

func TestExpectedSignalZeroMeasurement(t *testing.T) {
	for _, mean := range []float64{0, 0.1, 1, 5} {
		estimate, err := ExpectedSignal(PoissonBackground(mean), 0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, estimate)
	}
}

func TestExpectedSignalZeroMeanBackground(t *testing.T) {
	estimate, err := ExpectedSignal(PoissonBackground(0), 7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, estimate)
}

func TestExpectedSignalNeverExceedsMeasured(t *testing.T) {
	for _, mean := range []float64{0.01, 0.5, 1, 2, 10} {
		background := PoissonBackground(mean)
		for _, measured := range []int64{0, 1, 2, 5, 20} {
			estimate, err := ExpectedSignal(background, measured)
			require.NoError(t, err)
			assert.LessOrEqual(t, estimate, float64(measured)+1e-12)
		}
	}
}

func TestExpectedSignalSubtractsFullMeanWhenDominated(t *testing.T) {
	// far above the mean the truncation is negligible and the estimate is
	// measured minus the mean
	estimate, err := ExpectedSignal(PoissonBackground(2), 50)
	require.NoError(t, err)
	assert.InDelta(t, 48, estimate, 1e-9)
}

func TestExpectedSignalVanishingCDF(t *testing.T) {
	_, err := ExpectedSignal(vanishing{}, 3)
	var vanished *ErrVanishingCDF
	require.ErrorAs(t, err, &vanished)
	assert.Equal(t, 42.0, vanished.Mean)
	assert.Equal(t, int64(3), vanished.Measured)

	// a Poisson far above the measured count underflows the same way
	_, err = ExpectedSignal(PoissonBackground(1e6), 0)
	require.ErrorAs(t, err, &vanished)
}
