package msdata

import (
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
)

// SpectrumList is the dense ordinal index over all spectra of a
// dataset, and the materializer that assembles spectrum records from
// it. The index is built once, lazily, on the first access; after that
// it is immutable and safe for unsynchronized concurrent reads.
type SpectrumList struct {
	provider     RawProvider
	centroider   Centroider
	alternatives [][2]string

	buildOnce sync.Once
	buildErr  error
	paths     []string
	entries   []IndexEntry
	id2Index  map[string]int

	mu      sync.Mutex // guards buckets
	buckets map[int]*levelBucket
}

// levelBucket holds the parameter cache of one acquisition level. The
// bucket mutex serializes cache access, so materializations of
// different levels never contend.
type levelBucket struct {
	mu    sync.Mutex
	cache *ParameterCache
}

// Option configures a SpectrumList.
type Option func(*SpectrumList)

// WithCentroider sets the collaborator that centroids profile data.
func WithCentroider(c Centroider) Option {
	return func(l *SpectrumList) { l.centroider = c }
}

// WithAlternativeName registers an alternative parameter spelling with
// every acquisition-level cache of the list.
func WithAlternativeName(alt, canonical string) Option {
	return func(l *SpectrumList) {
		l.alternatives = append(l.alternatives, [2]string{alt, canonical})
	}
}

// NewSpectrumList returns a list over the provider's dataset. No
// provider call is made until the first access.
func NewSpectrumList(p RawProvider, opts ...Option) *SpectrumList {
	l := &SpectrumList{
		provider: p,
		buckets:  make(map[int]*levelBucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// build runs the one-time index construction and returns its stored
// result on every later call.
func (l *SpectrumList) build() error {
	l.buildOnce.Do(func() { l.buildErr = l.buildIndex() })
	return l.buildErr
}

func (l *SpectrumList) buildIndex() error {
	l.paths = l.provider.SourcePaths()
	if len(l.paths) == 0 {
		return ErrNoSources
	}
	l.id2Index = make(map[string]int)
	scanCounter := 0 // dataset-wide numbering behind the scan= ids
	for source := range l.paths {
		collections, err := l.provider.Collections(source)
		if err != nil {
			return fmt.Errorf("msdata: enumerate collections of %s: %w", l.paths[source], err)
		}
		for _, collection := range collections {
			scans, err := l.provider.Scans(source, collection)
			if err != nil {
				return fmt.Errorf("msdata: enumerate scans of %s: %w", l.paths[source], err)
			}
			for _, scan := range scans {
				entry := IndexEntry{
					SpectrumIdentity: SpectrumIdentity{Index: len(l.entries)},
					Source:           source,
					Collection:       collection,
					Scan:             scan,
				}
				if collection == CollectionNone {
					scanCounter++
					entry.NativeID = FormatScanID(scanCounter)
				} else {
					entry.NativeID, err = FormatFileID(sourceLabel(l.paths[source]), strconv.Itoa(scan))
					if err != nil {
						return err
					}
				}
				if _, dup := l.id2Index[entry.NativeID]; dup {
					return fmt.Errorf("msdata: duplicate native id %q: %w", entry.NativeID, ErrInvalidNativeID)
				}
				l.id2Index[entry.NativeID] = entry.Index
				l.entries = append(l.entries, entry)
			}
		}
	}
	return nil
}

// sourceLabel is the label used in file= native ids.
func sourceLabel(path string) string {
	return filepath.Base(path)
}

// Size returns the number of spectra in the dataset.
func (l *SpectrumList) Size() (int, error) {
	if err := l.build(); err != nil {
		return 0, err
	}
	return len(l.entries), nil
}

// Identity returns the index entry at ordinal i.
func (l *SpectrumList) Identity(i int) (IndexEntry, error) {
	if err := l.build(); err != nil {
		return IndexEntry{}, err
	}
	if i < 0 || i >= len(l.entries) {
		return IndexEntry{}, ErrInvalidSpectrumIndex
	}
	return l.entries[i], nil
}

// Find returns the ordinal of the spectrum with the given native id.
func (l *SpectrumList) Find(nativeID string) (int, error) {
	if err := l.build(); err != nil {
		return 0, err
	}
	if i, ok := l.id2Index[nativeID]; ok {
		return i, nil
	}
	return 0, fmt.Errorf("%q: %w", nativeID, ErrInvalidNativeID)
}

// SourcePaths returns the resolved source units of the dataset.
func (l *SpectrumList) SourcePaths() ([]string, error) {
	if err := l.build(); err != nil {
		return nil, err
	}
	return l.paths, nil
}

// bucket returns the parameter cache bucket of an acquisition level,
// creating it on first touch.
func (l *SpectrumList) bucket(level int) *levelBucket {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[level]
	if !ok {
		b = &levelBucket{cache: NewParameterCache()}
		for _, alt := range l.alternatives {
			b.cache.RegisterAlternative(alt[0], alt[1])
		}
		l.buckets[level] = b
	}
	return b
}
