package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	coincidence "github.com/ultrafast-exp/coincidence_go/pkg"
)

var configuration coincidence.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

type estimatorVariant struct {
	name       string
	simpleBg   bool
	covariance bool
}

var estimators = []estimatorVariant{
	{name: "statistical"},
	{name: "simple", simpleBg: true},
	{name: "covariance", covariance: true},
}

var shuffles = []string{"no-shuffle", "byte-shuffle", "bit-shuffle"}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	algorithm := flag.String("algorithm", "zstd", "Blosc algorithm")
	noBlosc := flag.Bool("no-blosc", false, "Do not use blosc")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}

	if *noBlosc {
		configuration.UseBlosc = false
	} else {
		if !coincidence.ValidBloscAlgorithm(*algorithm) {
			fmt.Println("Unknown algorithm: ", *algorithm)
			os.Exit(1)
		}
		configuration.UseBlosc = true
		configuration.BloscAlgorithm = *algorithm
		fmt.Println("Blosc algorithm: ", configuration.BloscAlgorithm)
	}
	coincidence.SetConfiguration(configuration)
	coincidence.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		printConfiguration(configuration, logger)
	}

	spec, err := coincidence.SpecFromConfiguration()
	if err != nil {
		logger.Error(err.Error())
		return
	}

	start := time.Now()

	genStart := time.Now()
	electrons, ions := generateTables(configuration, spec)
	fmt.Printf("Generated %d electron hits and %d ion hits over %d shots in %d ms\n",
		electrons.NumHits(), ions.NumHits(), configuration.GenShots, time.Since(genStart).Milliseconds())

	results := make([]coincidence.AnalysisResult, 0)
	for _, variant := range estimators {
		estStart := time.Now()
		result, err := runEstimator(variant, electrons, ions, spec)
		if err != nil {
			logger.Error(fmt.Sprintf("Estimator %s failed: %v", variant.name, err))
			continue
		}
		duration := time.Since(estStart)
		fmt.Printf("(%s) Time: %d ms, spectrum total: %f\n", variant.name, duration.Milliseconds(), spectrumTotal(result.Spectrum()))
		results = append(results, result)
	}

	if configuration.WriteData {
		benchmarkWriter(results)
	}

	duration := time.Since(start)
	fmt.Printf("Total time: %d ms\n", duration.Milliseconds())
}

func runEstimator(variant estimatorVariant, electrons, ions *coincidence.HitTable, spec coincidence.HistogramSpec) (coincidence.AnalysisResult, error) {
	result := coincidence.AnalysisResult{
		RunNumber:  int32(configuration.Seed),
		SourceFile: "generated",
		Spec:       spec,
	}
	if variant.covariance {
		covariance, err := coincidence.Covariance(electrons, ions, spec)
		if err != nil {
			return result, err
		}
		result.Covariance = covariance
		return result, nil
	}

	mode := coincidence.ModeStatistical
	if variant.simpleBg {
		mode = coincidence.ModeSimple
	}
	res, err := coincidence.Coincidence(electrons, ions, spec, mode)
	if err != nil {
		return result, err
	}
	result.Mode = mode
	result.Coincidence = res
	return result, nil
}

func spectrumTotal(s *coincidence.Spectrum) float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	return total
}

// benchmarkWriter sweeps the writer over every compression level, and with
// blosc enabled over every shuffle, rewriting the output files each round.
func benchmarkWriter(results []coincidence.AnalysisResult) {
	for compressionLevel := 0; compressionLevel < 10; compressionLevel++ {
		if configuration.UseBlosc {
			for _, shuffle := range shuffles {
				fmt.Println("Algorithm: ", configuration.BloscAlgorithm, "Compression level: ", compressionLevel, "Shuffle: ", shuffle)
				configuration.BloscShuffle = shuffle
				configuration.CompressionLevel = compressionLevel
				coincidence.SetConfiguration(configuration)
				start := time.Now()
				size, err := writeResults(results)
				if err != nil {
					logger.Error(fmt.Sprintf("Error writing results: %v", err))
					continue
				}
				duration := time.Since(start)
				fmt.Printf("(%s, comp %d, %s) Time: %d ms, size %d bytes\n",
					configuration.BloscAlgorithm, compressionLevel, shuffle, duration.Milliseconds(), size)
			}
		} else {
			fmt.Println("Algorithm: standard hdf5, Compression level: ", compressionLevel)
			configuration.CompressionLevel = compressionLevel
			coincidence.SetConfiguration(configuration)
			start := time.Now()
			size, err := writeResults(results)
			if err != nil {
				logger.Error(fmt.Sprintf("Error writing results: %v", err))
				continue
			}
			duration := time.Since(start)
			fmt.Printf("(hdf5, comp %d) Time: %d ms, size %d bytes\n", compressionLevel, duration.Milliseconds(), size)
		}
	}
}

// writeResults splits the results over two files since coincidence and
// covariance rows carry different count datasets.
func writeResults(results []coincidence.AnalysisResult) (int64, error) {
	covOut := configuration.FileOut + ".covariance"
	writer := coincidence.NewWriter(configuration.FileOut)
	writer2 := coincidence.NewWriter(covOut)

	for i := range results {
		if results[i].Covariance != nil {
			writer2.WriteResult(&results[i])
		} else {
			writer.WriteResult(&results[i])
		}
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}
	if err := writer2.Close(); err != nil {
		return 0, err
	}

	var size int64
	for _, filename := range []string{configuration.FileOut, covOut} {
		fileInfo, err := os.Stat(filename)
		if err != nil {
			return 0, err
		}
		size += fileInfo.Size()
	}
	return size, nil
}
