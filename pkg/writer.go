package coincidence

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/jmbenlloch/go-hdf5"
)

// AnalysisResult is one analyzed input file ready for persistence. Exactly
// one of Coincidence or Covariance is set, matching the configured
// estimator. Error marks results discarded by a worker.
type AnalysisResult struct {
	RunNumber   int32
	SourceFile  string
	Spec        HistogramSpec
	Mode        EstimatorMode
	Coincidence *CoincidenceResult
	Covariance  *CovarianceResult
	Error       bool
}

// Spectrum returns the corrected spectrum of whichever estimator ran.
func (r *AnalysisResult) Spectrum() *Spectrum {
	if r.Covariance != nil {
		return r.Covariance.Spectrum
	}
	return r.Coincidence.Spectrum
}

// AnalysisParams is flattened into the name/value parameters table through
// its hdf5 tags, one row per float64 field.
type AnalysisParams struct {
	Geometry         float64 `hdf5:"geometry"`
	Estimator        float64 `hdf5:"estimator"`
	Mode             float64 `hdf5:"simple_bg"`
	Boundary         float64 `hdf5:"boundary_policy"`
	BackgroundShots  float64 `hdf5:"background_shots"`
	MeasurementShots float64 `hdf5:"measurement_shots"`
	ElectronShots    float64 `hdf5:"electron_shots"`
	IonShots         float64 `hdf5:"ion_shots"`
	Ratio            float64 `hdf5:"shot_ratio"`
	ShotSpan         float64 `hdf5:"shot_span"`
}

func (r *AnalysisResult) params() AnalysisParams {
	p := AnalysisParams{
		Geometry: float64(r.Spec.Geometry),
		Boundary: float64(r.Spec.Boundary),
	}
	if r.Covariance != nil {
		p.Estimator = 1
		p.ElectronShots = float64(r.Covariance.ElectronShots)
		p.MeasurementShots = float64(r.Covariance.MeasurementShots)
		p.IonShots = float64(r.Covariance.IonShots)
	} else {
		p.Mode = float64(r.Mode)
		p.BackgroundShots = float64(r.Coincidence.BackgroundShots)
		p.MeasurementShots = float64(r.Coincidence.MeasurementShots)
		p.Ratio = r.Coincidence.Ratio
		p.ShotSpan = float64(r.Coincidence.ShotSpan)
	}
	return p
}

// Writer persists analysis results to an HDF5 file, one row per analyzed
// input. The spectra datasets are created on the first result, when the
// histogram shape is known.
type Writer struct {
	File         *hdf5.File
	Filename     string
	FirstRow     bool
	RunGroup     *hdf5.Group
	SpectraGroup *hdf5.Group
	ParamsGroup  *hdf5.Group
	RunInfoTable *hdf5.Dataset
	ParamsTable  *hdf5.Dataset
	Corrected    *hdf5.Dataset
	Background   *hdf5.Dataset
	Measurement  *hdf5.Dataset
	Raw          *hdf5.Dataset
	RowCounter   int
	ParamCounter int
}

func NewWriter(filename string) *Writer {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	if configuration.UseBlosc {
		blosc_version, blosc_date, err := hdf5.RegisterBlosc()
		if configuration.Verbosity > 0 {
			message := fmt.Sprintf("Blosc version: %s date: %s", blosc_version, blosc_date)
			logger.Info(message, "writer")
		}
		if err != nil {
			logger.Error(err.Error())
		}
	}

	writer := &Writer{}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", filename), "writer")
	}
	writer.File = createFile(filename)
	writer.Filename = filename
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.SpectraGroup = createGroup(writer.File, "Spectra")
	writer.ParamsGroup = createGroup(writer.File, "Parameters")
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writer.ParamsTable = createTable(writer.ParamsGroup, "analysis", ParamHDF5{})
	writer.RowCounter = 0
	return writer
}

// WriteResult appends one analysis to the output. Results written to the
// same file must share the histogram shape, the batch loads its binning
// once.
func (w *Writer) WriteResult(res *AnalysisResult) {
	spectrum := res.Spectrum()

	if !w.FirstRow {
		w.createSpectraDatasets(res)
		w.writeEdges(spectrum.Spec)
		w.FirstRow = true
	}

	writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: res.RunNumber}, w.RowCounter)
	w.writeAnalysisParameters(res.params())

	geometry := spectrum.Spec.Geometry
	writeSlab(w.Corrected, &spectrum.Values, w.RowCounter, spectrum.Nx(), spectrum.Ny(), geometry)
	if res.Covariance != nil {
		raw := res.Covariance.Raw
		writeSlab(w.Raw, &raw.Counts, w.RowCounter, raw.Nx(), raw.Ny(), geometry)
		meas := res.Covariance.Measurement
		writeSlab(w.Measurement, &meas.Counts, w.RowCounter, meas.Nx(), meas.Ny(), geometry)
	} else {
		bg := res.Coincidence.Background
		writeSlab(w.Background, &bg.Counts, w.RowCounter, bg.Nx(), bg.Ny(), geometry)
		meas := res.Coincidence.Measurement
		writeSlab(w.Measurement, &meas.Counts, w.RowCounter, meas.Nx(), meas.Ny(), geometry)
	}

	w.RowCounter++
}

func (w *Writer) createSpectraDatasets(res *AnalysisResult) {
	spectrum := res.Spectrum()
	geometry := spectrum.Spec.Geometry
	w.Corrected = w.createSpectrumArray("corrected", spectrum.Nx(), spectrum.Ny(), geometry, hdf5.T_NATIVE_DOUBLE)
	if res.Covariance != nil {
		raw := res.Covariance.Raw
		w.Raw = w.createSpectrumArray("raw", raw.Nx(), raw.Ny(), geometry, hdf5.T_NATIVE_INT64)
		meas := res.Covariance.Measurement
		w.Measurement = w.createSpectrumArray("measurement", meas.Nx(), meas.Ny(), geometry, hdf5.T_NATIVE_INT64)
	} else {
		bg := res.Coincidence.Background
		w.Background = w.createSpectrumArray("background", bg.Nx(), bg.Ny(), geometry, hdf5.T_NATIVE_INT64)
		meas := res.Coincidence.Measurement
		w.Measurement = w.createSpectrumArray("measurement", meas.Nx(), meas.Ny(), geometry, hdf5.T_NATIVE_INT64)
	}
}

func (w *Writer) createSpectrumArray(name string, nx int, ny int, geometry Geometry, dtype *hdf5.Datatype) *hdf5.Dataset {
	if geometry == Cartesian {
		return create3dArray(w.SpectraGroup, name, nx, ny, dtype)
	}
	return create2dArray(w.SpectraGroup, name, nx, dtype)
}

func writeSlab[T any](dataset *hdf5.Dataset, data *[]T, row int, nx int, ny int, geometry Geometry) {
	if geometry == Cartesian {
		write3dArray(dataset, data, row, nx, ny)
	} else {
		write2dArray(dataset, data, row, nx)
	}
}

func (w *Writer) writeEdges(spec HistogramSpec) {
	switch spec.Geometry {
	case Cartesian:
		writeFixedArray(w.SpectraGroup, "edges_x", spec.X)
		writeFixedArray(w.SpectraGroup, "edges_y", spec.Y)
	case Radial:
		writeFixedArray(w.SpectraGroup, "edges_r", spec.R)
	}
}

func (w *Writer) writeAnalysisParameters(params AnalysisParams) {
	t := reflect.TypeOf(params)
	n := t.NumField()
	entries := make([]ParamHDF5, n)

	fieldsToWrite := 0
	for i := 0; i < n; i++ {
		f := t.Field(i)
		paramName := f.Tag.Get("hdf5")
		if f.Type.Kind() != reflect.Float64 {
			continue
		}
		value := reflect.ValueOf(params).Field(i).Interface().(float64)
		entries[fieldsToWrite] = ParamHDF5{
			paramStr: convertToHdf5String(paramName),
			value:    value,
		}
		fieldsToWrite++
	}
	toWrite := entries[:fieldsToWrite]
	writeArrayToTable(w.ParamsTable, &toWrite, w.ParamCounter)
	w.ParamCounter += fieldsToWrite
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing file %s", w.Filename), "writer")
	}
	var errs []error

	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.ParamsTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing parameters table: %w", err))
	}
	if w.Corrected != nil {
		if err := w.Corrected.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing corrected spectrum: %w", err))
		}
	}
	if w.Background != nil {
		if err := w.Background.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing background counts: %w", err))
		}
	}
	if w.Measurement != nil {
		if err := w.Measurement.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing measurement counts: %w", err))
		}
	}
	if w.Raw != nil {
		if err := w.Raw.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing raw counts: %w", err))
		}
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run group: %w", err))
	}
	if err := w.SpectraGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing spectra group: %w", err))
	}
	if err := w.ParamsGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing parameters group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
