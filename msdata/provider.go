package msdata

import "fmt"

// RawProvider is the boundary to the vendor data layer. It enumerates
// the structure of a dataset and supplies raw parameter lists and
// sample arrays. Implementations do not need to be safe for concurrent
// use of the enumeration calls, but Parameters and Samples are called
// concurrently during batch materialization.
type RawProvider interface {
	// SourcePaths returns the ordered source units of the dataset, as
	// produced by the source resolver. The order is load-bearing:
	// ordinal assignment depends on it.
	SourcePaths() []string
	// Collections enumerates the nested acquisition collections of a
	// source in vendor order. A flat source returns the single
	// CollectionNone pseudo-collection.
	Collections(source int) ([]int, error)
	// Scans enumerates the vendor scan numbers of a collection in
	// acquisition order. Scan numbers must be unique within their
	// source across all of its collections; a violation surfaces as a
	// duplicate native id during index construction.
	Scans(source, collection int) ([]int, error)
	// Parameters returns the live parameter list of a scan.
	Parameters(source, collection, scan int) ([]Parameter, error)
	// Samples returns the raw sample arrays of a scan. The detail
	// level lets providers skip decoding work for metadata-only
	// requests.
	Samples(source, collection, scan int, dl DetailLevel) (xs, ys []float64, err error)
}

// Centroider reduces profile sample arrays to peak apex arrays. It is
// an external collaborator of the materializer, which only orchestrates
// the call.
type Centroider interface {
	Centroid(xs, ys []float64) ([]float64, []float64, error)
}

// Unavailable is the RawProvider for dataset types whose reader is not
// configured in this build. The dataset root is reported as the single
// source, every data call fails with ErrProviderUnavailable. Callers
// select it at configuration time instead of compiling support in or
// out.
type Unavailable struct {
	// Path is the dataset root, reported as the single source.
	Path string
	// Reason names the missing capability in error messages.
	Reason string
}

// SourcePaths implements RawProvider.
func (u Unavailable) SourcePaths() []string {
	if u.Path == "" {
		return nil
	}
	return []string{u.Path}
}

// Collections implements RawProvider.
func (u Unavailable) Collections(int) ([]int, error) { return nil, u.err() }

// Scans implements RawProvider.
func (u Unavailable) Scans(int, int) ([]int, error) { return nil, u.err() }

// Parameters implements RawProvider.
func (u Unavailable) Parameters(int, int, int) ([]Parameter, error) { return nil, u.err() }

// Samples implements RawProvider.
func (u Unavailable) Samples(int, int, int, DetailLevel) ([]float64, []float64, error) {
	return nil, nil, u.err()
}

func (u Unavailable) err() error {
	if u.Reason != "" {
		return fmt.Errorf("%s: %w", u.Reason, ErrProviderUnavailable)
	}
	return ErrProviderUnavailable
}
