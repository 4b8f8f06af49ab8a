package main

import (
	"encoding/json"
	"fmt"
	"os"

	coincidence "github.com/ultrafast-exp/coincidence_go/pkg"
)

func LoadConfiguration(filename string) (coincidence.Configuration, error) {
	var config coincidence.Configuration

	// Set default values
	config.MaxShots = 1000000000
	config.SkipShots = 0
	config.Verbosity = 0
	config.Geometry = "radial"
	config.Estimator = "coincidence"
	config.SimpleBg = false
	config.BoundaryPolicy = "reject"
	config.BinRangeX = coincidence.BinRangeConfig{Min: 0, Max: 256, Bins: 256}
	config.BinRangeY = coincidence.BinRangeConfig{Min: 0, Max: 256, Bins: 256}
	config.BinRangeR = coincidence.BinRangeConfig{Min: 0, Max: 128, Bins: 128}
	config.NoDB = true
	config.NumWorkers = 1
	config.WriteData = true
	config.FileOut = "benchmark.h5"
	config.UseBlosc = true
	config.CompressionLevel = 4
	config.BloscAlgorithm = "zstd"
	config.BloscShuffle = "byte-shuffle"
	config.Seed = 42
	config.GenShots = 200000
	config.GenSignalRate = 0.5
	config.GenNoiseRate = 2.0
	config.GenIonFraction = 0.25

	if filename == "" {
		return config, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config coincidence.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Geometry: %s", config.Geometry), "config")
	logger.Info(fmt.Sprintf("Boundary policy: %s", config.BoundaryPolicy), "config")
	logger.Info(fmt.Sprintf("Seed: %d", config.Seed), "config")
	logger.Info(fmt.Sprintf("Generated shots: %d", config.GenShots), "config")
	logger.Info(fmt.Sprintf("Signal rate: %f", config.GenSignalRate), "config")
	logger.Info(fmt.Sprintf("Noise rate: %f", config.GenNoiseRate), "config")
	logger.Info(fmt.Sprintf("Ion fraction: %f", config.GenIonFraction), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Use blosc: %t", config.UseBlosc), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
