package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	coincidence "github.com/ultrafast-exp/coincidence_go/pkg"
	"golang.org/x/exp/maps"
)

var dbConn *sqlx.DB
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

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	coincidence.SetConfiguration(configuration)
	coincidence.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
	}
	if VerbosityLevel > 0 {
		printConfiguration(configuration, logger)
	}

	if configuration.Estimator != "coincidence" && configuration.Estimator != "covariance" {
		message := fmt.Sprintf("Unknown estimator: %s", configuration.Estimator)
		logger.Error(message)
		return
	}

	files := inputFiles(configuration)
	if len(files) == 0 {
		logger.Error("No input files configured")
		return
	}

	spec, err := analysisSpec(files[0])
	if err != nil {
		logger.Error(err.Error())
		return
	}

	start := time.Now()
	jobs := make(chan WorkerData, 100)
	results := make(chan coincidence.AnalysisResult, 100)

	for w := 1; w <= configuration.NumWorkers; w++ {
		go worker(w, spec, jobs, results)
	}
	go sendFilesToWorkers(files, jobs)

	analyzed := make([]coincidence.AnalysisResult, 0)
	for result := range results {
		analyzed = append(analyzed, result)
		if len(analyzed) == len(files) {
			break
		}
	}
	fmt.Println("Total files processed: ", len(analyzed))

	runCounts := make(map[int32]int)
	failed := 0
	for _, result := range analyzed {
		if result.Error {
			failed++
			continue
		}
		runCounts[result.RunNumber]++
	}
	runs := maps.Keys(runCounts)
	slices.Sort(runs)
	fmt.Println("Runs analyzed: ", runs)
	if failed > 0 {
		fmt.Println("Files failed: ", failed)
	}

	if configuration.WriteData {
		writer := coincidence.NewWriter(configuration.FileOut)
		for i := range analyzed {
			if analyzed[i].Error {
				message := fmt.Sprintf("skipping failed file %s", analyzed[i].SourceFile)
				logger.Error(message)
				continue
			}
			writer.WriteResult(&analyzed[i])
		}
		if err := writer.Close(); err != nil {
			logger.Error(err.Error())
		}
	}

	if configuration.PlotOut != "" {
		plotFirstSpectrum(analyzed)
	}

	duration := time.Since(start)
	fmt.Printf("Total time: %d ms\n", duration.Milliseconds())
}

func inputFiles(config coincidence.Configuration) []string {
	if len(config.FilesIn) > 0 {
		return config.FilesIn
	}
	if config.FileIn != "" {
		return []string{config.FileIn}
	}
	return nil
}

// analysisSpec fixes the binning for the whole batch, either from the
// database calibration of the first file's run or from the configured bin
// ranges when the database is disabled. Every file of a batch shares the
// spec so the output datasets stack.
func analysisSpec(filename string) (coincidence.HistogramSpec, error) {
	if configuration.NoDB {
		return coincidence.SpecFromConfiguration()
	}

	var err error
	dbConn, err = coincidence.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		return coincidence.HistogramSpec{}, fmt.Errorf("Error connecting to database: %w", err)
	}
	defer dbConn.Close()

	reader, err := coincidence.OpenReader(filename)
	if err != nil {
		return coincidence.HistogramSpec{}, err
	}
	defer reader.Close()

	runNumber, err := reader.RunNumber()
	if err != nil {
		return coincidence.HistogramSpec{}, err
	}

	binning, err := coincidence.LoadBinning(dbConn, int(runNumber))
	if err != nil {
		return coincidence.HistogramSpec{}, err
	}
	return binning.Spec()
}

func plotFirstSpectrum(results []coincidence.AnalysisResult) {
	for i := range results {
		if results[i].Error {
			continue
		}
		if err := coincidence.WritePlot(results[i].Spectrum(), configuration.PlotOut); err != nil {
			message := fmt.Errorf("error writing plot: %w", err)
			logger.Error(message.Error())
			return
		}
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Plot written to: %s", configuration.PlotOut)
			logger.Info(message, "main")
		}
		return
	}
}
