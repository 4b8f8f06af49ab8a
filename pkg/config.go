package coincidence

// BinRangeConfig describes a uniform binning for one axis.
type BinRangeConfig struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Bins int     `json:"bins"`
}

type Configuration struct {
	MaxShots         int            `json:"max_shots"`
	SkipShots        int            `json:"skip_shots"`
	Verbosity        int            `json:"verbosity"`
	FileIn           string         `json:"file_in"`
	FilesIn          []string       `json:"files_in"`
	FileOut          string         `json:"file_out"`
	PlotOut          string         `json:"plot_out"`
	Geometry         string         `json:"geometry"`
	Estimator        string         `json:"estimator"`
	SimpleBg         bool           `json:"simple_bg"`
	BoundaryPolicy   string         `json:"boundary_policy"`
	BinRangeX        BinRangeConfig `json:"bin_range_x"`
	BinRangeY        BinRangeConfig `json:"bin_range_y"`
	BinRangeR        BinRangeConfig `json:"bin_range_r"`
	NoDB             bool           `json:"no_db"`
	Host             string         `json:"host"`
	User             string         `json:"user"`
	Passwd           string         `json:"pass"`
	DBName           string         `json:"dbname"`
	NumWorkers       int            `json:"num_workers"`
	WriteData        bool           `json:"write_data"`
	UseBlosc         bool           `json:"use_blosc"`
	CompressionLevel int            `json:"compression_level"`
	BloscAlgorithm   string         `json:"blosc_algorithm"`
	BloscShuffle     string         `json:"blosc_shuffle"`
	Seed             int64          `json:"seed"`
	GenShots         int            `json:"gen_shots"`
	GenSignalRate    float64        `json:"gen_signal_rate"`
	GenNoiseRate     float64        `json:"gen_noise_rate"`
	GenIonFraction   float64        `json:"gen_ion_fraction"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
