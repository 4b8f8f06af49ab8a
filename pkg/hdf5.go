package coincidence

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

type RunInfoHDF5 struct {
	run_number int32
}

type ParamHDF5 struct {
	paramStr [STRLEN]byte
	value    float64
}

const STRLEN = 20

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

var bloscFilters = map[string]hdf5.BloscFilter{
	"blosclz": hdf5.BLOSC_BLOSCLZ,
	"lz4":     hdf5.BLOSC_LZ4,
	"lz4hc":   hdf5.BLOSC_LZ4HC,
	"snappy":  hdf5.BLOSC_SNAPPY,
	"zlib":    hdf5.BLOSC_ZLIB,
	"zstd":    hdf5.BLOSC_ZSTD,
}

var bloscShuffles = map[string]hdf5.BloscShuffle{
	"no-shuffle":   hdf5.BLOSC_NOSHUFFLE,
	"byte-shuffle": hdf5.BLOSC_SHUFFLE,
	"bit-shuffle":  hdf5.BLOSC_BITSHUFFLE,
}

// ValidBloscAlgorithm reports whether the blosc filter name is known.
func ValidBloscAlgorithm(algorithm string) bool {
	_, ok := bloscFilters[algorithm]
	return ok
}

func parseBloscFilter(algorithm, shuffle string) (hdf5.BloscFilter, hdf5.BloscShuffle, error) {
	f, ok := bloscFilters[algorithm]
	if !ok {
		return 0, 0, fmt.Errorf("unknown blosc algorithm %q", algorithm)
	}
	s, ok := bloscShuffles[shuffle]
	if !ok {
		return 0, 0, fmt.Errorf("unknown blosc shuffle %q", shuffle)
	}
	return f, s, nil
}

// applyCompression configures either the blosc filter or plain deflate on a
// dataset creation property list, from the loaded configuration.
func applyCompression(plist *hdf5.PropList) {
	if configuration.UseBlosc {
		filter, shuffle, err := parseBloscFilter(configuration.BloscAlgorithm, configuration.BloscShuffle)
		if err != nil {
			panic(err)
		}
		hdf5.ConfigureBloscFilter(plist, filter, configuration.CompressionLevel, shuffle)
	} else {
		plist.SetDeflate(configuration.CompressionLevel)
	}
}

func createFile(fname string) *hdf5.File {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		panic(err)
	}
	return f
}

func createGroup(file *hdf5.File, groupName string) *hdf5.Group {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		panic(err)
	}
	return g
}

// create3dArray makes an extendable rows x nx x ny dataset, one slab per
// written result row.
func create3dArray(group *hdf5.Group, name string, nx int, ny int, dtype *hdf5.Datatype) *hdf5.Dataset {
	dimsArray := []uint{0, 0, 0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDimsArray := []uint{uint(unlimitedDims), uint(nx), uint(ny)}

	chunks := []uint{1, 50, uint(ny)}
	if nx < 50 {
		chunks[1] = uint(nx)
	}
	dataset := createArray(group, name, dimsArray, maxDimsArray, chunks, dtype)
	return dataset
}

func create2dArray(group *hdf5.Group, name string, width int, dtype *hdf5.Datatype) *hdf5.Dataset {
	dimsArray := []uint{0, 0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDimsArray := []uint{uint(unlimitedDims), uint(width)}
	chunks := []uint{1, 32768}
	if width < 32768 {
		chunks[1] = uint(width)
	}
	dataset := createArray(group, name, dimsArray, maxDimsArray, chunks, dtype)
	return dataset
}

func createArray(group *hdf5.Group, name string, dims []uint, maxDims []uint, chunks []uint, dtype *hdf5.Datatype) *hdf5.Dataset {
	file_spaceArray, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(err)
	}

	// create property list
	plistArray, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}

	plistArray.SetChunk(chunks)
	applyCompression(plistArray)

	// create the dataset
	dsetArray, err := group.CreateDatasetWith(name, dtype, file_spaceArray, plistArray)
	if err != nil {
		panic(err)
	}
	return dsetArray
}

func createTable(group *hdf5.Group, name string, datatype interface{}) *hdf5.Dataset {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(err)
	}

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}

	chunks := []uint{32768}
	plist.SetChunk(chunks)
	applyCompression(plist)

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		panic(err)
	}

	// create the dataset
	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		panic(err)
	}
	return dset
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, row int) {
	array := []T{data}
	writeArrayToTable(dataset, &array, row)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, row int) {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		panic(err)
	}

	// extend
	rowsInFile := uint(row)
	newsize := []uint{rowsInFile + length}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{rowsInFile}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}

// writeFixedArray fills a non-extendable 1d dataset in one shot, used for
// the bin-edge vectors.
func writeFixedArray(group *hdf5.Group, name string, values []float64) {
	dims := []uint{uint(len(values))}
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		panic(err)
	}
	dset, err := group.CreateDataset(name, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		panic(err)
	}
	if err := dset.Write(&values); err != nil {
		panic(err)
	}
	dset.Close()
	space.Close()
}

func write3dArray[T any](dataset *hdf5.Dataset, data *[]T, row int, nx int, ny int) {
	// extend
	newsize := []uint{uint(row) + 1, uint(nx), uint(ny)}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{uint(row), 0, 0}
	count := []uint{1, uint(nx), uint(ny)}
	filespace.SelectHyperslab(start, nil, count, nil)

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		panic(err)
	}

	// write data to the dataset
	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}

func write2dArray[T any](dataset *hdf5.Dataset, data *[]T, row int, width int) {
	// extend
	newsize := []uint{uint(row) + 1, uint(width)}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{uint(row), 0}
	count := []uint{1, uint(width)}
	filespace.SelectHyperslab(start, nil, count, nil)

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		panic(err)
	}

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}
