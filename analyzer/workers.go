package main

import (
	"fmt"

	coincidence "github.com/ultrafast-exp/coincidence_go/pkg"
)

type WorkerData struct {
	Filename string
}

func worker(id int, spec coincidence.HistogramSpec, jobs <-chan WorkerData, results chan<- coincidence.AnalysisResult) {
	for job := range jobs {
		if VerbosityLevel > 0 {
			fmt.Printf("Worker %d processing file %s\n", id, job.Filename)
		}
		results <- analyzeFile(job.Filename, spec)
	}
}

func sendFilesToWorkers(files []string, jobs chan<- WorkerData) {
	for _, filename := range files {
		jobs <- WorkerData{Filename: filename}
	}
	close(jobs)
}

func analyzeFile(filename string, spec coincidence.HistogramSpec) (result coincidence.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("analyzer recovered from panic on file %s: %v", filename, r)
			logger.Error(errMessage.Error())
			message := fmt.Sprintf("discarding file %s", filename)
			logger.Error(message)
			result = coincidence.AnalysisResult{SourceFile: filename, Error: true}
		}
	}()

	result = coincidence.AnalysisResult{
		SourceFile: filename,
		Spec:       spec,
		Mode:       coincidence.ModeFromConfiguration(),
		Error:      true,
	}

	reader, err := coincidence.OpenReader(filename)
	if err != nil {
		logger.Error(err.Error())
		return result
	}
	defer reader.Close()

	runNumber, err := reader.RunNumber()
	if err != nil {
		logger.Error(err.Error())
		return result
	}
	result.RunNumber = runNumber

	electrons, ions, err := reader.LoadTables(spec.Geometry)
	if err != nil {
		logger.Error(err.Error())
		return result
	}

	switch configuration.Estimator {
	case "covariance":
		covariance, err := coincidence.Covariance(electrons, ions, spec)
		if err != nil {
			message := fmt.Errorf("error analyzing file %s: %w", filename, err)
			logger.Error(message.Error())
			return result
		}
		result.Covariance = covariance
	default:
		res, err := coincidence.Coincidence(electrons, ions, spec, result.Mode)
		if err != nil {
			message := fmt.Errorf("error analyzing file %s: %w", filename, err)
			logger.Error(message.Error())
			return result
		}
		result.Coincidence = res
	}
	result.Error = false
	return result
}
