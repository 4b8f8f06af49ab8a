package coincidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistinctShotUnion(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []int
		expected []int
	}{
		{name: "disjoint", a: []int{1, 3}, b: []int{2, 4}, expected: []int{1, 2, 3, 4}},
		{name: "overlap and repeats", a: []int{1, 1, 2}, b: []int{2, 2, 5}, expected: []int{1, 2, 5}},
		{name: "left empty", a: nil, b: []int{7}, expected: []int{7}},
		{name: "right empty", a: []int{0, 4}, b: nil, expected: []int{0, 4}},
		{name: "both empty", a: nil, b: nil, expected: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, distinctShotUnion(tt.a, tt.b))
		})
	}
}

func TestTrimShots(t *testing.T) {
	electrons := &HitTable{
		Shots: []int{1, 1, 2, 3, 5},
		R:     []float64{0, 1, 2, 3, 4},
	}
	ions := &HitTable{Shots: []int{2, 4, 6}}

	// the distinct union is 1..6, skipping one shot and keeping three
	// selects the window 2..4 on both species
	e, i := TrimShots(electrons, ions, 1, 3)
	assert.Equal(t, []int{2, 3}, e.Shots)
	assert.Equal(t, []float64{2, 3}, e.R)
	assert.Equal(t, []int{2, 4}, i.Shots)
	assert.Nil(t, i.R)
}

func TestTrimShotsMaxOnly(t *testing.T) {
	electrons := &HitTable{
		Shots: []int{1, 1, 2, 3, 5},
		R:     []float64{0, 1, 2, 3, 4},
	}
	ions := &HitTable{Shots: []int{2, 4, 6}}

	e, i := TrimShots(electrons, ions, 0, 2)
	assert.Equal(t, []int{1, 1, 2}, e.Shots)
	assert.Equal(t, []int{2}, i.Shots)
}

func TestTrimShotsDisabled(t *testing.T) {
	electrons := &HitTable{Shots: []int{1}, R: []float64{0}}
	ions := &HitTable{Shots: []int{1}}

	e, i := TrimShots(electrons, ions, 0, 0)
	assert.Same(t, electrons, e)
	assert.Same(t, ions, i)
}

func TestTrimShotsSkipPastEnd(t *testing.T) {
	electrons := &HitTable{Shots: []int{1, 2}, R: []float64{0, 0}}
	ions := &HitTable{Shots: []int{2}}

	e, i := TrimShots(electrons, ions, 5, 0)
	require.NotNil(t, e)
	require.NotNil(t, i)
	assert.Equal(t, 0, e.NumHits())
	assert.Equal(t, 0, i.NumHits())
}
