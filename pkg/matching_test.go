package coincidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShotPresent(t *testing.T) {
	shots := []int{1, 1, 2, 5, 5, 5, 9}

	tests := []struct {
		name     string
		shot     int
		expected bool
	}{
		{name: "first shot", shot: 1, expected: true},
		{name: "middle shot", shot: 5, expected: true},
		{name: "last shot", shot: 9, expected: true},
		{name: "absent inside range", shot: 3, expected: false},
		{name: "below range", shot: 0, expected: false},
		{name: "above range", shot: 10, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shotPresent(shots, tt.shot))
		})
	}
}

func TestShotPresentEmptyTable(t *testing.T) {
	assert.False(t, shotPresent(nil, 3))
}

func TestShotRange(t *testing.T) {
	shots := []int{1, 1, 2, 5, 5, 5, 9}

	tests := []struct {
		name   string
		shot   int
		lo, hi int
	}{
		{name: "run of two", shot: 1, lo: 0, hi: 2},
		{name: "single record", shot: 2, lo: 2, hi: 3},
		{name: "run of three", shot: 5, lo: 3, hi: 6},
		{name: "last record", shot: 9, lo: 6, hi: 7},
		{name: "absent shot gives empty range", shot: 4, lo: 3, hi: 3},
		{name: "past the end gives empty range", shot: 11, lo: 7, hi: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := shotRange(shots, tt.shot)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}
