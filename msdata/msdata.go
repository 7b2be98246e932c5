// Package msdata builds a randomly-addressable spectrum index over
// multi-source mass spectrometry datasets and materializes spectrum
// records at progressive detail levels. Raw parameters and sample
// arrays come from a RawProvider, expensive metadata lookups are
// amortized by per-acquisition-level parameter caches, and profile
// data can be centroided through an external Centroider.
package msdata

// DetailLevel selects how much of a spectrum record is populated.
// Each level's record is a strict superset of the previous level's
// populated fields.
type DetailLevel int

const (
	// DetailInstantMetadata populates identity fields only, without
	// calling the provider.
	DetailInstantMetadata DetailLevel = iota
	// DetailFastMetadata adds the acquisition level, retention time
	// and polarity from the live parameter list.
	DetailFastMetadata
	// DetailFullMetadata adds the scan window and the raw parameter
	// list itself.
	DetailFullMetadata
	// DetailFullData adds the sample data, optionally centroided.
	DetailFullData
)

// CollectionNone marks an index entry for a direct top-level spectrum,
// not nested in an acquisition collection.
const CollectionNone = -1

// SpectrumIdentity identifies one spectrum of a dataset. Index is the
// dense zero-based ordinal, strictly increasing in construction order
// and unique per spectrum list. NativeID is the externally visible
// identifier, either "scan=<n>" or "file=<label>::<id>".
type SpectrumIdentity struct {
	Index    int
	NativeID string
}

// IndexEntry locates a spectrum in its source: the source ordinal, the
// collection ordinal (CollectionNone for flat sources) and the vendor
// scan number within the collection.
type IndexEntry struct {
	SpectrumIdentity
	Source     int
	Collection int
	Scan       int
}

// Parameter is one (name, value) pair of a spectrum's live parameter
// list. The list is ordered and per spectrum, names are not globally
// indexed.
type Parameter struct {
	Name  string
	Value string
}

// Peak contains the actual ms peak info
type Peak struct {
	Mz     float64
	Intens float64
}

// Spectrum is a materialized spectrum record. Which fields are
// populated depends on the requested DetailLevel.
type Spectrum struct {
	IndexEntry
	SourcePath string

	// DetailFastMetadata and up. RetentionTime and Polarity keep their
	// zero value when the source layout does not carry them.
	Level         int
	RetentionTime float64
	Polarity      string

	// DetailFullMetadata and up
	ScanBegin  float64
	ScanEnd    float64
	Parameters []Parameter

	// DetailFullData
	Peaks      []Peak
	Centroided bool
}

// Canonical parameter names the materializer reads from the live list.
// Providers publish their metadata under these names, alternative
// vendor spellings can be bound with WithAlternativeName.
const (
	ParamMSLevel       = "MS Level"
	ParamRetentionTime = "Retention Time"
	ParamPolarity      = "Polarity"
	ParamScanBegin     = "Scan Begin"
	ParamScanEnd       = "Scan End"
	ParamSpectrumType  = "Spectrum Type"
)
