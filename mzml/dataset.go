package mzml

import (
	"sync"

	"github.com/524D/mzindex/msdata"
)

// DataSet serves the spectra of a resolved mzML dataset through the
// msdata provider interface. Files are parsed lazily, once, on first
// access. mzML files have no nested acquisitions, so every source
// exposes the single flat pseudo-collection.
type DataSet struct {
	paths []string
	once  []sync.Once
	files []*File
	errs  []error
}

var _ msdata.RawProvider = (*DataSet)(nil)

// OpenDataSet resolves root and wraps the resulting mzML files.
func OpenDataSet(root string) (*DataSet, error) {
	paths, err := ResolveSources(root)
	if err != nil {
		return nil, err
	}
	return NewDataSet(paths), nil
}

// NewDataSet wraps an explicit list of mzML file paths.
func NewDataSet(paths []string) *DataSet {
	return &DataSet{
		paths: paths,
		once:  make([]sync.Once, len(paths)),
		files: make([]*File, len(paths)),
		errs:  make([]error, len(paths)),
	}
}

// SourcePaths implements msdata.RawProvider.
func (d *DataSet) SourcePaths() []string {
	return d.paths
}

// file parses a source on first use. Safe for concurrent callers.
func (d *DataSet) file(source int) (*File, error) {
	if source < 0 || source >= len(d.paths) {
		return nil, ErrInvalidSource
	}
	d.once[source].Do(func() {
		d.files[source], d.errs[source] = Open(d.paths[source])
	})
	return d.files[source], d.errs[source]
}

// Collections implements msdata.RawProvider. mzML sources are flat.
func (d *DataSet) Collections(source int) ([]int, error) {
	if source < 0 || source >= len(d.paths) {
		return nil, ErrInvalidSource
	}
	return []int{msdata.CollectionNone}, nil
}

// Scans implements msdata.RawProvider. Scan numbers are the zero
// based spectrum indexes of the file.
func (d *DataSet) Scans(source, collection int) ([]int, error) {
	if collection != msdata.CollectionNone {
		return nil, ErrInvalidCollection
	}
	f, err := d.file(source)
	if err != nil {
		return nil, err
	}
	scans := make([]int, f.NumSpectra())
	for i := range scans {
		scans[i] = i
	}
	return scans, nil
}

// Parameters implements msdata.RawProvider.
func (d *DataSet) Parameters(source, collection, scan int) ([]msdata.Parameter, error) {
	if collection != msdata.CollectionNone {
		return nil, ErrInvalidCollection
	}
	f, err := d.file(source)
	if err != nil {
		return nil, err
	}
	return f.Parameters(scan)
}

// Instruments lists the mass analyzer names of one source's
// instrument configuration.
func (d *DataSet) Instruments(source int) ([]string, error) {
	f, err := d.file(source)
	if err != nil {
		return nil, err
	}
	return f.Instruments()
}

// Samples implements msdata.RawProvider. mzML spectra decode in one
// piece, the requested detail level does not change the cost.
func (d *DataSet) Samples(source, collection, scan int, _ msdata.DetailLevel) (xs, ys []float64, err error) {
	if collection != msdata.CollectionNone {
		return nil, nil, ErrInvalidCollection
	}
	f, err := d.file(source)
	if err != nil {
		return nil, nil, err
	}
	return f.ReadScan(scan)
}
