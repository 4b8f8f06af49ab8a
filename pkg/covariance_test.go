package coincidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCovarianceRadialKeepsNegatives(t *testing.T) {
	// three of four shots put a hit in the first bin but the ion shot does
	// not, so the first bin goes negative and stays there
	electrons := &HitTable{
		Shots: []int{1, 2, 3, 4},
		R:     []float64{0.5, 0.5, 0.5, 1.5},
	}
	ions := &HitTable{Shots: []int{4}}

	res, err := Covariance(electrons, ions, radialSpec(0, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 4, res.ElectronShots)
	assert.Equal(t, 1, res.MeasurementShots)
	assert.Equal(t, 1, res.IonShots)
	assert.InDelta(t, -0.75, res.Spectrum.Values[0], 1e-12)
	assert.InDelta(t, 0.75, res.Spectrum.Values[1], 1e-12)
}

func TestCovarianceCartesianClampsNegatives(t *testing.T) {
	electrons := &HitTable{
		Shots: []int{1, 2, 3, 4},
		X:     []float64{0.5, 0.5, 0.5, 1.5},
		Y:     []float64{0.5, 0.5, 0.5, 0.5},
	}
	ions := &HitTable{Shots: []int{4}}

	res, err := Covariance(electrons, ions, cartesianSpec(0, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Spectrum.At(0, 0))
	assert.InDelta(t, 0.75, res.Spectrum.At(1, 0), 1e-12)
	// the raw histogram runs over the grown axes
	assert.Len(t, res.Raw.Counts, 9)
	// the corrected spectrum keeps the configured shape
	assert.Len(t, res.Spectrum.Values, 4)
}

func TestCovarianceRawKeepsFinalEdgeHits(t *testing.T) {
	electrons := &HitTable{
		Shots: []int{1, 2},
		R:     []float64{0.5, 2},
	}
	ions := &HitTable{Shots: []int{1}}

	res, err := Covariance(electrons, ions, radialSpec(0, 2, 2))
	require.NoError(t, err)
	require.Len(t, res.Raw.Counts, 3)
	assert.Equal(t, int64(1), res.Raw.At(0, 0))
	assert.Equal(t, int64(1), res.Raw.At(2, 0))
	assert.InDelta(t, 0.5, res.Spectrum.Values[0], 1e-12)
	assert.InDelta(t, 0, res.Spectrum.Values[1], 1e-12)
}

func TestCovarianceZeroMeasurementShotsFails(t *testing.T) {
	electrons := &HitTable{Shots: []int{1}, R: []float64{0.5}}
	ions := &HitTable{Shots: []int{9}}

	res, err := Covariance(electrons, ions, radialSpec(0, 1, 1))
	assert.Nil(t, res)
	var zero *ErrZeroShots
	require.ErrorAs(t, err, &zero)
	assert.Equal(t, "measurement", zero.Population)
}

func TestCountIonShots(t *testing.T) {
	tests := []struct {
		name     string
		shots    []int
		expected int
	}{
		{name: "empty", shots: nil, expected: 0},
		{name: "single shot", shots: []int{7}, expected: 1},
		{name: "repeats collapse", shots: []int{2, 2, 5}, expected: 2},
		{name: "sparse span", shots: []int{1, 100}, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, countIonShots(&HitTable{Shots: tt.shots}))
		})
	}
}
