package msdata

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// halvingCentroider keeps every other sample, a recognizable stand-in
// for a real peak picker.
type halvingCentroider struct{}

func (halvingCentroider) Centroid(xs, ys []float64) ([]float64, []float64, error) {
	var cx, cy []float64
	for i := 0; i < len(xs); i += 2 {
		cx = append(cx, xs[i])
		cy = append(cy, ys[i])
	}
	return cx, cy, nil
}

type failingCentroider struct{ err error }

func (f failingCentroider) Centroid(xs, ys []float64) ([]float64, []float64, error) {
	return nil, nil, f.err
}

func TestSpectrumInstant(t *testing.T) {
	p := mixedProvider()
	l := NewSpectrumList(p)

	s, err := l.Spectrum(3, DetailInstantMetadata)
	if err != nil {
		t.Fatalf("Spectrum: error return %v", err)
	}
	if s.NativeID != "scan=1" || s.SourcePath != "/data/run2.d" {
		t.Errorf("Spectrum: id %s path %s, should be scan=1 /data/run2.d", s.NativeID, s.SourcePath)
	}
	if s.Level != 0 || s.Peaks != nil || s.Parameters != nil {
		t.Errorf("Spectrum: instant record carries deeper fields: %+v", s)
	}
	// Identity-only materialization makes no provider data calls
	if p.parameterCalls != 0 || p.sampleCalls != 0 {
		t.Errorf("Provider called %d/%d times, should be 0/0", p.parameterCalls, p.sampleCalls)
	}
}

func TestSpectrumFastMetadata(t *testing.T) {
	p := mixedProvider()
	l := NewSpectrumList(p)

	s, err := l.Spectrum(2, DetailFastMetadata)
	if err != nil {
		t.Fatalf("Spectrum: error return %v", err)
	}
	if s.Level != 2 {
		t.Errorf("Level: %d, should be 2", s.Level)
	}
	if s.RetentionTime != 4.5 {
		t.Errorf("RetentionTime: %v, should be 4.5", s.RetentionTime)
	}
	if s.Polarity != "positive" {
		t.Errorf("Polarity: %s, should be positive", s.Polarity)
	}
	// Scan window and raw list belong to full metadata
	if s.ScanBegin != 0 || s.ScanEnd != 0 || s.Parameters != nil {
		t.Errorf("Spectrum: fast record carries full metadata: %+v", s)
	}
	if p.parameterCalls != 1 {
		t.Errorf("Parameters called %d times, should be 1", p.parameterCalls)
	}
	if p.sampleCalls != 0 {
		t.Errorf("Samples called %d times, should be 0", p.sampleCalls)
	}
}

func TestSpectrumFullMetadata(t *testing.T) {
	p := mixedProvider()
	l := NewSpectrumList(p)

	s, err := l.Spectrum(0, DetailFullMetadata)
	if err != nil {
		t.Fatalf("Spectrum: error return %v", err)
	}
	if s.ScanBegin != 400 || s.ScanEnd != 1600 {
		t.Errorf("Scan window: (%v, %v), should be (400, 1600)", s.ScanBegin, s.ScanEnd)
	}
	if diff := cmp.Diff(stdParams(1, 1.5, "positive"), s.Parameters); diff != "" {
		t.Errorf("Parameters mismatch (-want +got):\n%s", diff)
	}
	if s.Peaks != nil {
		t.Errorf("Peaks: %v, should be nil below DetailFullData", s.Peaks)
	}
}

func TestSpectrumFullData(t *testing.T) {
	p := mixedProvider()
	l := NewSpectrumList(p)

	s, err := l.Spectrum(0, DetailFullData)
	if err != nil {
		t.Fatalf("Spectrum: error return %v", err)
	}
	want := []Peak{{Mz: 100, Intens: 1}, {Mz: 200, Intens: 2}, {Mz: 300, Intens: 3}}
	if diff := cmp.Diff(want, s.Peaks); diff != "" {
		t.Errorf("Peaks mismatch (-want +got):\n%s", diff)
	}
	if s.Centroided {
		t.Errorf("Centroided: true, should be false without level selection")
	}
	if p.sampleCalls != 1 {
		t.Errorf("Samples called %d times, should be 1", p.sampleCalls)
	}
}

func TestSpectrumCentroided(t *testing.T) {
	p := mixedProvider()
	l := NewSpectrumList(p, WithCentroider(halvingCentroider{}))

	// Ordinal 0 is level 1: selected for centroiding
	s, err := l.SpectrumCentroided(0, DetailFullData, NewLevelSet(1))
	if err != nil {
		t.Fatalf("SpectrumCentroided: error return %v", err)
	}
	if !s.Centroided {
		t.Errorf("Centroided: false, should be true")
	}
	want := []Peak{{Mz: 100, Intens: 1}, {Mz: 300, Intens: 3}}
	if diff := cmp.Diff(want, s.Peaks); diff != "" {
		t.Errorf("Peaks mismatch (-want +got):\n%s", diff)
	}

	// Ordinal 2 is level 2: not selected, profile attached untouched
	s, err = l.SpectrumCentroided(2, DetailFullData, NewLevelSet(1))
	if err != nil {
		t.Fatalf("SpectrumCentroided: error return %v", err)
	}
	if s.Centroided || len(s.Peaks) != 3 {
		t.Errorf("Spectrum: centroided %v with %d peaks, should be false with 3", s.Centroided, len(s.Peaks))
	}
}

func TestSpectrumCentroiderErrors(t *testing.T) {
	// Test case 1: no centroider configured
	l := NewSpectrumList(mixedProvider())
	_, err := l.SpectrumCentroided(0, DetailFullData, NewLevelSet(1))
	if !errors.Is(err, ErrNoCentroider) {
		t.Errorf("Expected ErrNoCentroider, got: %v", err)
	}

	// Test case 2: centroider failure is propagated with context
	centErr := errors.New("bad profile")
	l = NewSpectrumList(mixedProvider(), WithCentroider(failingCentroider{err: centErr}))
	_, err = l.SpectrumCentroided(0, DetailFullData, NewLevelSet(1))
	if !errors.Is(err, centErr) {
		t.Errorf("Expected wrapped centroider error, got: %v", err)
	}
}

func TestSpectrumProviderErrors(t *testing.T) {
	// Test case 1: parameter fetch failure
	p := mixedProvider()
	p.paramsErr = errors.New("vendor layer failure")
	l := NewSpectrumList(p)
	_, err := l.Spectrum(0, DetailFastMetadata)
	if !errors.Is(err, p.paramsErr) {
		t.Errorf("Expected wrapped provider error, got: %v", err)
	}

	// Test case 2: sample fetch failure
	p = mixedProvider()
	p.samplesErr = errors.New("corrupt block")
	l = NewSpectrumList(p)
	_, err = l.Spectrum(0, DetailFullData)
	if !errors.Is(err, p.samplesErr) {
		t.Errorf("Expected wrapped provider error, got: %v", err)
	}

	// Test case 3: a layout without the acquisition level is an error,
	// the level is not optional
	p = mixedProvider()
	p.params = func(source, collection, scan int) []Parameter {
		return []Parameter{{Name: ParamRetentionTime, Value: "1"}}
	}
	l = NewSpectrumList(p)
	_, err = l.Spectrum(0, DetailFastMetadata)
	if !errors.Is(err, ErrParameterNotFound) {
		t.Errorf("Expected ErrParameterNotFound, got: %v", err)
	}
}

func TestSpectrumOptionalMetadata(t *testing.T) {
	// A layout with only the level: optional fields keep their zero
	// values and materialization succeeds
	p := mixedProvider()
	p.params = func(source, collection, scan int) []Parameter {
		return []Parameter{{Name: ParamMSLevel, Value: "1"}}
	}
	l := NewSpectrumList(p)

	s, err := l.Spectrum(0, DetailFullMetadata)
	if err != nil {
		t.Fatalf("Spectrum: error return %v", err)
	}
	if s.Level != 1 {
		t.Errorf("Level: %d, should be 1", s.Level)
	}
	if s.RetentionTime != 0 || s.Polarity != "" || s.ScanBegin != 0 || s.ScanEnd != 0 {
		t.Errorf("Optional fields not zero: %+v", s)
	}
	if len(s.Parameters) != 1 {
		t.Errorf("Parameters: %d entries, should be 1", len(s.Parameters))
	}
}

func TestSpectrumAlternativeName(t *testing.T) {
	p := mixedProvider()
	p.params = func(source, collection, scan int) []Parameter {
		return []Parameter{
			{Name: ParamMSLevel, Value: "1"},
			{Name: "RT", Value: "33.25"},
		}
	}
	l := NewSpectrumList(p, WithAlternativeName("RT", ParamRetentionTime))

	s, err := l.Spectrum(0, DetailFastMetadata)
	if err != nil {
		t.Fatalf("Spectrum: error return %v", err)
	}
	if s.RetentionTime != 33.25 {
		t.Errorf("RetentionTime: %v, should be 33.25", s.RetentionTime)
	}
}
