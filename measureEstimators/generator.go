package main

import (
	"math/rand/v2"

	coincidence "github.com/ultrafast-exp/coincidence_go/pkg"
	"gonum.org/v1/gonum/stat/distuv"
)

// generateTables builds a synthetic run: every shot draws Poisson noise
// electrons, ion shots draw extra Poisson signal electrons on top.
// Shots are generated in order so both tables come out sorted.
// Coordinates are uniform over the spec ranges, nothing falls outside.
func generateTables(config coincidence.Configuration, spec coincidence.HistogramSpec) (*coincidence.HitTable, *coincidence.HitTable) {
	src := rand.NewPCG(uint64(config.Seed), 0)
	rng := rand.New(src)
	noise := distuv.Poisson{Lambda: config.GenNoiseRate, Src: src}
	signal := distuv.Poisson{Lambda: config.GenSignalRate, Src: src}

	electrons := &coincidence.HitTable{}
	ions := &coincidence.HitTable{}

	for shot := 0; shot < config.GenShots; shot++ {
		hasIon := rng.Float64() < config.GenIonFraction
		if hasIon {
			ions.Shots = append(ions.Shots, shot)
		}

		hits := sampleCount(noise)
		if hasIon {
			hits += sampleCount(signal)
		}
		for h := 0; h < hits; h++ {
			appendHit(rng, electrons, shot, spec)
		}
	}
	return electrons, ions
}

func sampleCount(p distuv.Poisson) int {
	if p.Lambda <= 0 {
		return 0
	}
	return int(p.Rand())
}

func appendHit(rng *rand.Rand, t *coincidence.HitTable, shot int, spec coincidence.HistogramSpec) {
	t.Shots = append(t.Shots, shot)
	switch spec.Geometry {
	case coincidence.Cartesian:
		t.X = append(t.X, sampleCoord(rng, spec.X))
		t.Y = append(t.Y, sampleCoord(rng, spec.Y))
	case coincidence.Radial:
		t.R = append(t.R, sampleCoord(rng, spec.R))
	}
}

func sampleCoord(rng *rand.Rand, edges coincidence.BinEdges) float64 {
	low := edges[0]
	high := edges[len(edges)-1]
	return low + rng.Float64()*(high-low)
}
