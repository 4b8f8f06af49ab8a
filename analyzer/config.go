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
	config.Geometry = "cartesian"
	config.Estimator = "coincidence"
	config.SimpleBg = false
	config.BoundaryPolicy = "reject"
	config.BinRangeX = coincidence.BinRangeConfig{Min: 0, Max: 256, Bins: 256}
	config.BinRangeY = coincidence.BinRangeConfig{Min: 0, Max: 256, Bins: 256}
	config.BinRangeR = coincidence.BinRangeConfig{Min: 0, Max: 128, Bins: 128}
	config.NoDB = false
	config.Host = "db.ultrafast-exp.org"
	config.User = "coincreader"
	config.Passwd = "readonly"
	config.DBName = "ULTRAFAST"
	config.NumWorkers = 1
	config.WriteData = true
	config.UseBlosc = false
	config.CompressionLevel = 4
	config.BloscAlgorithm = "zstd"
	config.BloscShuffle = "byte-shuffle"

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
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Files in: %v", config.FilesIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Plot out: %s", config.PlotOut), "config")
	logger.Info(fmt.Sprintf("Geometry: %s", config.Geometry), "config")
	logger.Info(fmt.Sprintf("Estimator: %s", config.Estimator), "config")
	logger.Info(fmt.Sprintf("Simple background: %t", config.SimpleBg), "config")
	logger.Info(fmt.Sprintf("Boundary policy: %s", config.BoundaryPolicy), "config")
	logger.Info(fmt.Sprintf("Skip shots: %d", config.SkipShots), "config")
	logger.Info(fmt.Sprintf("Max shots: %d", config.MaxShots), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Use blosc: %t", config.UseBlosc), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
}
