package coincidence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sixShotTables builds ten electron hits over shots 1..6 and ions on
// shots 2, 5 and 6, so three shots are background and three measurement.
func sixShotTables() (*HitTable, *HitTable) {
	electrons := &HitTable{
		Shots: []int{1, 1, 2, 3, 3, 3, 4, 5, 5, 6},
		R:     []float64{0, 1, 2, 0, 1, 2, 3, 0, 1, 2},
	}
	ions := &HitTable{Shots: []int{2, 5, 6}}
	return electrons, ions
}

func radialSpec(min, max float64, bins int) HistogramSpec {
	return HistogramSpec{
		Geometry: Radial,
		R:        UniformEdges(min, max, bins),
		Boundary: BoundaryReject,
	}
}

func cartesianSpec(min, max float64, bins int) HistogramSpec {
	return HistogramSpec{
		Geometry: Cartesian,
		X:        UniformEdges(min, max, bins),
		Y:        UniformEdges(min, max, bins),
		Boundary: BoundaryReject,
	}
}

func TestPassesPartitionShotsAndHits(t *testing.T) {
	electrons, ions := sixShotTables()
	spec := radialSpec(0, 4, 4)

	bgShots, bgHist, err := BackgroundPass(electrons, ions, spec)
	require.NoError(t, err)
	measShots, measHist, err := MeasurementPass(electrons, ions, spec)
	require.NoError(t, err)

	assert.Equal(t, 3, bgShots)
	assert.Equal(t, 3, measShots)
	// every distinct electron shot lands in exactly one population
	assert.Equal(t, 6, bgShots+measShots)
	// and every electron hit is histogrammed exactly once overall
	assert.Equal(t, int64(10), bgHist.Total()+measHist.Total())
}

func TestBackgroundPassSkipsIonShots(t *testing.T) {
	electrons, ions := sixShotTables()

	shots, hist, err := BackgroundPass(electrons, ions, radialSpec(0, 4, 4))
	require.NoError(t, err)

	// shots 1, 3 and 4 carry six of the ten hits
	assert.Equal(t, 3, shots)
	assert.Equal(t, int64(6), hist.Total())
	assert.Equal(t, int64(2), hist.At(0, 0))
	assert.Equal(t, int64(2), hist.At(1, 0))
	assert.Equal(t, int64(1), hist.At(2, 0))
	assert.Equal(t, int64(1), hist.At(3, 0))
}

func TestMeasurementPassMatchesIonShots(t *testing.T) {
	electrons, ions := sixShotTables()

	shots, hist, err := MeasurementPass(electrons, ions, radialSpec(0, 4, 4))
	require.NoError(t, err)

	// shots 2, 5 and 6 carry the remaining four hits
	assert.Equal(t, 3, shots)
	assert.Equal(t, int64(4), hist.Total())
	assert.Equal(t, int64(1), hist.At(0, 0))
	assert.Equal(t, int64(1), hist.At(1, 0))
	assert.Equal(t, int64(2), hist.At(2, 0))
}

func TestMeasurementPassDeduplicatesIonShots(t *testing.T) {
	electrons := &HitTable{
		Shots: []int{4, 4, 7},
		R:     []float64{0.5, 1.5, 0.5},
	}
	ions := &HitTable{Shots: []int{4, 4, 4, 9}}

	shots, hist, err := MeasurementPass(electrons, ions, radialSpec(0, 2, 2))
	require.NoError(t, err)

	// three ion hits on shot 4 still bucket its electrons once
	assert.Equal(t, 1, shots)
	assert.Equal(t, int64(2), hist.Total())
	assert.Equal(t, int64(1), hist.At(0, 0))
	assert.Equal(t, int64(1), hist.At(1, 0))
}

func TestMeasurementPassIgnoresUnmatchedIonShots(t *testing.T) {
	electrons := &HitTable{Shots: []int{1, 3}, R: []float64{0.5, 0.5}}
	ions := &HitTable{Shots: []int{2, 3, 8}}

	shots, hist, err := MeasurementPass(electrons, ions, radialSpec(0, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, shots)
	assert.Equal(t, int64(1), hist.Total())
}

func TestSingleBinRadialHistogram(t *testing.T) {
	electrons := &HitTable{
		Shots: []int{0, 1, 2, 3},
		R:     []float64{0, 0, 0, 0},
	}
	ions := &HitTable{}

	shots, hist, err := BackgroundPass(electrons, ions, radialSpec(0, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 4, shots)
	require.Len(t, hist.Counts, 1)
	assert.Equal(t, int64(4), hist.At(0, 0))
}

func TestCartesianLayoutIsXMajor(t *testing.T) {
	electrons := &HitTable{
		Shots: []int{1, 2, 3},
		X:     []float64{0, 1, 1},
		Y:     []float64{0, 0, 1},
	}
	ions := &HitTable{}

	_, hist, err := BackgroundPass(electrons, ions, cartesianSpec(0, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, hist.Nx())
	assert.Equal(t, 2, hist.Ny())
	assert.Equal(t, int64(1), hist.At(0, 0))
	assert.Equal(t, int64(1), hist.At(1, 0))
	assert.Equal(t, int64(1), hist.At(1, 1))
	assert.Equal(t, int64(0), hist.At(0, 1))
}

func TestPassesRejectUnsortedTables(t *testing.T) {
	spec := radialSpec(0, 1, 1)

	electrons := &HitTable{Shots: []int{3, 1, 2}, R: []float64{0, 0, 0}}
	_, _, err := BackgroundPass(electrons, &HitTable{}, spec)
	var unsorted *ErrUnsortedTable
	require.ErrorAs(t, err, &unsorted)
	assert.Equal(t, "electron", unsorted.Table)
	assert.Equal(t, 1, unsorted.Index)

	goodElectrons := &HitTable{Shots: []int{1}, R: []float64{0}}
	badIons := &HitTable{Shots: []int{5, 2}}
	_, _, err = MeasurementPass(goodElectrons, badIons, spec)
	require.ErrorAs(t, err, &unsorted)
	assert.Equal(t, "ion", unsorted.Table)
}

func TestPassesRejectEmptyElectronTable(t *testing.T) {
	_, _, err := BackgroundPass(&HitTable{}, &HitTable{}, radialSpec(0, 1, 1))
	var empty *ErrEmptyTable
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "electron", empty.Table)
}

func TestPassesRejectColumnMismatch(t *testing.T) {
	electrons := &HitTable{
		Shots: []int{1, 2},
		X:     []float64{0},
		Y:     []float64{0, 0},
	}

	_, _, err := BackgroundPass(electrons, &HitTable{}, cartesianSpec(0, 1, 1))
	var mismatch *ErrColumnMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "x", mismatch.Column)
	assert.Equal(t, 2, mismatch.Want)
	assert.Equal(t, 1, mismatch.Got)
}

func TestPassesRejectOutOfRangeCoordinate(t *testing.T) {
	electrons := &HitTable{Shots: []int{1}, R: []float64{5}}

	_, _, err := BackgroundPass(electrons, &HitTable{}, radialSpec(0, 4, 4))
	var outOfRange *ErrCoordOutOfRange
	require.ErrorAs(t, err, &outOfRange)
	assert.Equal(t, "r", outOfRange.Axis)
}

func TestPassesRejectNaNCoordinate(t *testing.T) {
	electrons := &HitTable{Shots: []int{1}, R: []float64{math.NaN()}}

	// a NaN hit is rejected under either policy instead of being binned
	for _, policy := range []BoundaryPolicy{BoundaryReject, BoundaryClamp} {
		spec := radialSpec(0, 4, 4)
		spec.Boundary = policy

		_, _, err := BackgroundPass(electrons, &HitTable{}, spec)
		var outOfRange *ErrCoordOutOfRange
		require.ErrorAs(t, err, &outOfRange)
		assert.Equal(t, "r", outOfRange.Axis)
		assert.True(t, math.IsNaN(outOfRange.Value))
	}
}

func TestClampPolicyAcceptsOutOfRangeCoordinate(t *testing.T) {
	electrons := &HitTable{Shots: []int{1, 2}, R: []float64{-1, 9}}
	spec := radialSpec(0, 2, 2)
	spec.Boundary = BoundaryClamp

	_, hist, err := BackgroundPass(electrons, &HitTable{}, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hist.At(0, 0))
	assert.Equal(t, int64(1), hist.At(1, 0))
}
