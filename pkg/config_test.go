package coincidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Geometry
		ok       bool
	}{
		{name: "cartesian", input: "cartesian", expected: Cartesian, ok: true},
		{name: "radial", input: "radial", expected: Radial, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "unknown", input: "spherical", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geometry, err := ParseGeometry(tt.input)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, geometry)
		})
	}
}

func TestSpecFromConfigurationCartesian(t *testing.T) {
	SetConfiguration(Configuration{
		Geometry:       "cartesian",
		BoundaryPolicy: "reject",
		BinRangeX:      BinRangeConfig{Min: 0, Max: 256, Bins: 256},
		BinRangeY:      BinRangeConfig{Min: -10, Max: 10, Bins: 40},
	})

	spec, err := SpecFromConfiguration()
	require.NoError(t, err)
	assert.Equal(t, Cartesian, spec.Geometry)
	assert.Equal(t, BoundaryReject, spec.Boundary)
	assert.Equal(t, 256, spec.X.NumBins())
	assert.Equal(t, 40, spec.Y.NumBins())
	assert.Equal(t, -10.0, spec.Y[0])
	assert.Equal(t, 10.0, spec.Y[40])
}

func TestSpecFromConfigurationRadial(t *testing.T) {
	SetConfiguration(Configuration{
		Geometry:       "radial",
		BoundaryPolicy: "clamp",
		BinRangeR:      BinRangeConfig{Min: 0, Max: 128, Bins: 128},
	})

	spec, err := SpecFromConfiguration()
	require.NoError(t, err)
	assert.Equal(t, Radial, spec.Geometry)
	assert.Equal(t, BoundaryClamp, spec.Boundary)
	assert.Equal(t, 128, spec.R.NumBins())
	assert.Nil(t, spec.X)
}

func TestSpecFromConfigurationRejectsBadValues(t *testing.T) {
	SetConfiguration(Configuration{Geometry: "spherical", BoundaryPolicy: "reject"})
	_, err := SpecFromConfiguration()
	assert.Error(t, err)

	SetConfiguration(Configuration{Geometry: "radial", BoundaryPolicy: "wrap"})
	_, err = SpecFromConfiguration()
	assert.Error(t, err)

	// a radial analysis without a usable bin range fails validation
	SetConfiguration(Configuration{Geometry: "radial", BoundaryPolicy: "reject"})
	_, err = SpecFromConfiguration()
	assert.Error(t, err)
}
