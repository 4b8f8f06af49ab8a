package coincidence

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

// RunBinning is the per-run binning calibration from the run catalog. The
// axes present decide the geometry: x and y rows make a cartesian run, an
// r row a radial one.
type RunBinning struct {
	Geometry Geometry
	X, Y, R  BinEdges
}

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// LoadBinning reads the binning calibration valid for a run.
func LoadBinning(db *sqlx.DB, runNumber int) (RunBinning, error) {
	binning, err := getBinningFromDB(db, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting binning calibration from database: %w", err)
		logger.Error(errMessage.Error())
		return RunBinning{}, errMessage
	}
	return binning, nil
}

// Spec merges the calibrated binning with the configured boundary policy.
func (b RunBinning) Spec() (HistogramSpec, error) {
	policy, err := ParseBoundaryPolicy(configuration.BoundaryPolicy)
	if err != nil {
		return HistogramSpec{}, err
	}
	spec := HistogramSpec{Geometry: b.Geometry, X: b.X, Y: b.Y, R: b.R, Boundary: policy}
	return spec, spec.Validate()
}

// BinningEntry mirrors one row of the CoincidenceBinning catalog table.
type BinningEntry struct {
	Axis   string  `db:"Axis"`
	MinVal float64 `db:"MinVal"`
	MaxVal float64 `db:"MaxVal"`
	Bins   int     `db:"Bins"`
}

func getBinningFromDB(db *sqlx.DB, runNumber int) (RunBinning, error) {
	query := "SELECT Axis, MinVal, MaxVal, Bins FROM CoincidenceBinning WHERE MinRun <= %d and MaxRun >= %d ORDER BY Axis"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Binning calibration read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return RunBinning{}, errMessage
	}

	binning := RunBinning{}
	found := 0
	for rows.Next() {
		result := BinningEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return RunBinning{}, errMessage
		}
		edges := UniformEdges(result.MinVal, result.MaxVal, result.Bins)
		switch result.Axis {
		case "x":
			binning.X = edges
		case "y":
			binning.Y = edges
		case "r":
			binning.R = edges
		default:
			return RunBinning{}, fmt.Errorf("unknown binning axis %q for run %d", result.Axis, runNumber)
		}
		found++
	}

	if found == 0 {
		return RunBinning{}, fmt.Errorf("no binning calibration for run %d", runNumber)
	}
	switch {
	case binning.X != nil && binning.Y != nil:
		binning.Geometry = Cartesian
	case binning.R != nil:
		binning.Geometry = Radial
	default:
		return RunBinning{}, fmt.Errorf("incomplete binning calibration for run %d", runNumber)
	}
	return binning, nil
}
