package msdata

import (
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Spectrum materializes the spectrum at ordinal i to the requested
// detail level, without centroiding.
func (l *SpectrumList) Spectrum(i int, dl DetailLevel) (Spectrum, error) {
	return l.SpectrumCentroided(i, dl, nil)
}

// SpectrumCentroided materializes the spectrum at ordinal i to the
// requested detail level. When the spectrum's acquisition level is in
// levels, the profile data is passed through the centroider configured
// with WithCentroider before it is attached to the record.
func (l *SpectrumList) SpectrumCentroided(i int, dl DetailLevel, levels *LevelSet) (Spectrum, error) {
	if err := l.build(); err != nil {
		return Spectrum{}, err
	}
	if i < 0 || i >= len(l.entries) {
		return Spectrum{}, ErrInvalidSpectrumIndex
	}
	entry := l.entries[i]
	s := Spectrum{IndexEntry: entry, SourcePath: l.paths[entry.Source]}
	if dl < DetailFastMetadata {
		return s, nil
	}

	params, err := l.provider.Parameters(entry.Source, entry.Collection, entry.Scan)
	if err != nil {
		return Spectrum{}, fmt.Errorf("msdata: parameters of %s: %w", entry.NativeID, err)
	}
	if err := l.fillMetadata(&s, params, dl); err != nil {
		return Spectrum{}, err
	}
	if dl < DetailFullData {
		return s, nil
	}

	xs, ys, err := l.provider.Samples(entry.Source, entry.Collection, entry.Scan, dl)
	if err != nil {
		return Spectrum{}, fmt.Errorf("msdata: samples of %s: %w", entry.NativeID, err)
	}
	if levels.Contains(s.Level) {
		if l.centroider == nil {
			return Spectrum{}, ErrNoCentroider
		}
		xs, ys, err = l.centroider.Centroid(xs, ys)
		if err != nil {
			return Spectrum{}, fmt.Errorf("msdata: centroid %s: %w", entry.NativeID, err)
		}
		s.Centroided = true
	}
	s.Peaks = make([]Peak, len(xs))
	for j := range xs {
		s.Peaks[j] = Peak{Mz: xs[j], Intens: ys[j]}
	}
	return s, nil
}

// fillMetadata populates the metadata fields of s from the live
// parameter list, through the parameter cache of the spectrum's
// acquisition-level bucket. Optional metadata missing from the layout
// keeps its zero value, the acquisition level itself is required.
func (l *SpectrumList) fillMetadata(s *Spectrum, params []Parameter, dl DetailLevel) error {
	level, err := acquisitionLevel(params)
	if err != nil {
		return err
	}
	s.Level = level

	b := l.bucket(level)
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, err := b.cache.Get(ParamRetentionTime, params); err == nil {
		if s.RetentionTime, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("msdata: bad retention time %q: %v", v, err)
		}
	}
	if v, err := b.cache.Get(ParamPolarity, params); err == nil {
		s.Polarity = v
	}
	if dl < DetailFullMetadata {
		return nil
	}

	if v, err := b.cache.Get(ParamScanBegin, params); err == nil {
		if s.ScanBegin, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("msdata: bad scan begin %q: %v", v, err)
		}
	}
	if v, err := b.cache.Get(ParamScanEnd, params); err == nil {
		if s.ScanEnd, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("msdata: bad scan end %q: %v", v, err)
		}
	}
	s.Parameters = params
	return nil
}

// acquisitionLevel reads the MS level by a direct scan of the live
// list. The level selects the cache bucket, so it cannot be read
// through the cache it selects.
func acquisitionLevel(params []Parameter) (int, error) {
	for _, p := range params {
		if p.Name == ParamMSLevel {
			level, err := strconv.Atoi(p.Value)
			if err != nil {
				return 0, fmt.Errorf("msdata: bad MS level %q: %v", p.Value, err)
			}
			return level, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", ParamMSLevel, ErrParameterNotFound)
}

// AllSpectra materializes every spectrum of the dataset at the
// requested detail level, centroiding the acquisition levels in
// levels. At most workers materializations run concurrently; the
// result keeps ordinal order.
func (l *SpectrumList) AllSpectra(dl DetailLevel, levels *LevelSet, workers int) ([]Spectrum, error) {
	n, err := l.Size()
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	out := make([]Spectrum, n)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			s, err := l.SpectrumCentroided(i, dl, levels)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
