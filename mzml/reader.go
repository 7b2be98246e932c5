package mzml

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/net/html/charset"

	"github.com/524D/mzindex/msdata"
)

// Controlled Vocabulary accessions that we consume
const (
	cvParamMzArray         = `MS:1000514`
	cvParamIntensityArray  = `MS:1000515`
	cvParamZlibCompression = `MS:1000574`
	cvParamNoCompression   = `MS:1000576`
	cvParam64bitFloat      = `MS:1000523`
	cvParam32bitFloat      = `MS:1000521`
	cvParamNumpressLinear  = `MS:1002312`
	cvParamNumpressPic     = `MS:1002313`
	cvParamNumpressSlof    = `MS:1002314`

	cvParamMSLevel          = `MS:1000511`
	cvParamCentroidSpectrum = `MS:1000127`
	cvParamProfileSpectrum  = `MS:1000128`
	cvParamPositiveScan     = `MS:1000130`
	cvParamNegativeScan     = `MS:1000129`
	cvParamTotalIonCurrent  = `MS:1000285`

	cvParamScanStartTime    = `MS:1000016`
	cvParamIonInjectionTime = `MS:1000927`
	cvParamScanWindowLower  = `MS:1000501`
	cvParamScanWindowUpper  = `MS:1000500`

	cvParamSelectedIonMz = `MS:1000744`

	cvUnitMinute    = `UO:0000031`
	cvUnitMinuteOld = `MS:1000038`
)

// Open reads the mzML file at the given path.
func Open(path string) (*File, error) {
	fl, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mzml: %w", err)
	}
	defer fl.Close()
	f, err := Read(fl)
	if err != nil {
		return nil, fmt.Errorf("mzml: read %s: %w", path, err)
	}
	return f, nil
}

// Read parses an mzML document from the given reader. The whole
// document is kept in memory, scan data is decoded on demand.
func Read(reader io.Reader) (*File, error) {
	var f File
	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	if err := d.Decode(&f.content); err != nil {
		return nil, err
	}
	if err := f.traverseScan(); err != nil {
		return nil, err
	}
	return &f, nil
}

// traverseScan builds the maps between spectrum index and mzML
// spectrum id.
func (f *File) traverseScan() error {
	n := len(f.content.Run.SpectrumList.Spectrum)
	f.index2id = make([]string, n)
	f.id2Index = make(map[string]int, n)
	for i := range f.content.Run.SpectrumList.Spectrum {
		id := f.content.Run.SpectrumList.Spectrum[i].ID
		if _, ok := f.id2Index[id]; ok {
			return fmt.Errorf("duplicate spectrum id %q: %w", id, ErrInvalidScanID)
		}
		f.index2id[i] = id
		f.id2Index[id] = i
	}
	return nil
}

// NumSpectra returns the number of spectra in the file.
func (f *File) NumSpectra() int {
	return len(f.content.Run.SpectrumList.Spectrum)
}

// ScanID converts a spectrum index into the mzML spectrum id.
func (f *File) ScanID(scanIndex int) (string, error) {
	if scanIndex < 0 || scanIndex >= f.NumSpectra() {
		return "", ErrInvalidScanIndex
	}
	return f.index2id[scanIndex], nil
}

// ScanIndex converts an mzML spectrum id into a spectrum index.
func (f *File) ScanIndex(scanID string) (int, error) {
	if i, ok := f.id2Index[scanID]; ok {
		return i, nil
	}
	return 0, ErrInvalidScanID
}

// Parameters returns the acquisition metadata of one spectrum as a
// flat name/value list. The canonical names of the msdata package are
// emitted first, in a stable order, followed by any extra values the
// file carries. "MS Level" is always present, a missing level
// annotation counts as level 1.
func (f *File) Parameters(scanIndex int) ([]msdata.Parameter, error) {
	if scanIndex < 0 || scanIndex >= f.NumSpectra() {
		return nil, ErrInvalidScanIndex
	}
	sp := &f.content.Run.SpectrumList.Spectrum[scanIndex]

	level := "1"
	var specType, polarity, tic string
	for _, cv := range sp.CvPar {
		switch cv.Accession {
		case cvParamMSLevel:
			if cv.Value != "" {
				level = cv.Value
			}
		case cvParamCentroidSpectrum:
			specType = "centroid"
		case cvParamProfileSpectrum:
			specType = "profile"
		case cvParamPositiveScan:
			polarity = "positive"
		case cvParamNegativeScan:
			polarity = "negative"
		case cvParamTotalIonCurrent:
			tic = cv.Value
		}
	}

	var retention, injection string
	if len(sp.ScanList.Scan) > 0 {
		sc := &sp.ScanList.Scan[0]
		for _, cv := range sc.CvPar {
			switch cv.Accession {
			case cvParamScanStartTime:
				retention = inSeconds(cv)
			case cvParamIonInjectionTime:
				injection = cv.Value
			case cvParamPositiveScan:
				if polarity == "" {
					polarity = "positive"
				}
			case cvParamNegativeScan:
				if polarity == "" {
					polarity = "negative"
				}
			}
		}
	}
	begin, end := f.scanWindow(sp)

	params := make([]msdata.Parameter, 0, 9)
	params = append(params, msdata.Parameter{Name: msdata.ParamMSLevel, Value: level})
	if retention != "" {
		params = append(params, msdata.Parameter{Name: msdata.ParamRetentionTime, Value: retention})
	}
	if polarity != "" {
		params = append(params, msdata.Parameter{Name: msdata.ParamPolarity, Value: polarity})
	}
	if begin != "" {
		params = append(params, msdata.Parameter{Name: msdata.ParamScanBegin, Value: begin})
	}
	if end != "" {
		params = append(params, msdata.Parameter{Name: msdata.ParamScanEnd, Value: end})
	}
	if specType != "" {
		params = append(params, msdata.Parameter{Name: msdata.ParamSpectrumType, Value: specType})
	}
	if tic != "" {
		params = append(params, msdata.Parameter{Name: "Total Ion Current", Value: tic})
	}
	if injection != "" {
		params = append(params, msdata.Parameter{Name: "Ion Injection Time", Value: injection})
	}
	if mz := precursorMz(sp); mz != "" {
		params = append(params, msdata.Parameter{Name: "Precursor M/z", Value: mz})
	}
	return params, nil
}

// inSeconds converts a time valued cvParam into seconds. Legacy files
// annotate minutes with an MS accession instead of a UO one.
func inSeconds(cv cvParam) string {
	if cv.UnitAccession != cvUnitMinute && cv.UnitAccession != cvUnitMinuteOld {
		return cv.Value
	}
	v, err := strconv.ParseFloat(cv.Value, 64)
	if err != nil {
		return cv.Value
	}
	return strconv.FormatFloat(v*60, 'g', -1, 64)
}

// scanWindow extracts the acquisition m/z range of the first scan
// window, if any. The window list is kept as raw XML, so it is
// unmarshalled here on demand.
func (f *File) scanWindow(sp *spectrum) (begin, end string) {
	if len(sp.ScanList.Scan) == 0 {
		return "", ""
	}
	inner := sp.ScanList.Scan[0].ScanWindowList.ScanWindowList
	if inner == "" {
		return "", ""
	}
	var w struct {
		XMLName xml.Name  `xml:"scanWindow"`
		CvPar   []cvParam `xml:"cvParam"`
	}
	if err := xml.Unmarshal([]byte(inner), &w); err != nil {
		return "", ""
	}
	for _, cv := range w.CvPar {
		switch cv.Accession {
		case cvParamScanWindowLower:
			begin = cv.Value
		case cvParamScanWindowUpper:
			end = cv.Value
		}
	}
	return begin, end
}

func precursorMz(sp *spectrum) string {
	if len(sp.PrecursorList) == 0 || len(sp.PrecursorList[0].Precursor) == 0 {
		return ""
	}
	p := &sp.PrecursorList[0].Precursor[0]
	if len(p.SelectedIonList.SelectedIon) == 0 {
		return ""
	}
	for _, cv := range p.SelectedIonList.SelectedIon[0].CvPar {
		if cv.Accession == cvParamSelectedIonMz {
			return cv.Value
		}
	}
	return ""
}

// ReadScan decodes the m/z and intensity arrays of one spectrum.
func (f *File) ReadScan(scanIndex int) (mz, intens []float64, err error) {
	if scanIndex < 0 || scanIndex >= f.NumSpectra() {
		return nil, nil, ErrInvalidScanIndex
	}
	sp := &f.content.Run.SpectrumList.Spectrum[scanIndex]
	for i := range sp.BinaryDataArrayList.BinaryDataArray {
		bda := &sp.BinaryDataArrayList.BinaryDataArray[i]
		vals, isMz, isIntens, err := decodeArray(bda)
		if err != nil {
			return nil, nil, fmt.Errorf("mzml: spectrum %d: %w", scanIndex, err)
		}
		switch {
		case isMz:
			mz = vals
		case isIntens:
			intens = vals
		}
	}
	if mz == nil || intens == nil {
		return nil, nil, fmt.Errorf("mzml: spectrum %d misses m/z or intensity array", scanIndex)
	}
	if len(mz) != len(intens) {
		return nil, nil, fmt.Errorf("mzml: spectrum %d: m/z and intensity arrays differ in length", scanIndex)
	}
	return mz, intens, nil
}

// decodeArray turns one binaryDataArray into float values. The array
// kind, float width and compression are all announced by cvParams.
func decodeArray(bda *binaryDataArray) (vals []float64, isMz, isIntens bool, err error) {
	bits32 := false
	compressed := false
	for _, cv := range bda.CvPar {
		switch cv.Accession {
		case cvParamMzArray:
			isMz = true
		case cvParamIntensityArray:
			isIntens = true
		case cvParam32bitFloat:
			bits32 = true
		case cvParam64bitFloat:
			bits32 = false
		case cvParamZlibCompression:
			compressed = true
		case cvParamNoCompression:
			compressed = false
		case cvParamNumpressLinear, cvParamNumpressPic, cvParamNumpressSlof:
			return nil, false, false, fmt.Errorf("%w: %s", ErrUnsupportedCompression, cv.Accession)
		}
	}
	if !isMz && !isIntens {
		return nil, false, false, nil
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(bda.Binary))
	if err != nil {
		return nil, false, false, fmt.Errorf("base64 decode: %w", err)
	}
	if compressed {
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, false, false, fmt.Errorf("zlib decode: %w", err)
		}
		data, err = io.ReadAll(zr)
		zr.Close()
		if err != nil {
			return nil, false, false, fmt.Errorf("zlib decode: %w", err)
		}
	}
	if bits32 {
		vals = make([]float64, len(data)/4)
		for i := range vals {
			u := binary.LittleEndian.Uint32(data[i*4:])
			vals[i] = float64(math.Float32frombits(u))
		}
	} else {
		vals = make([]float64, len(data)/8)
		for i := range vals {
			u := binary.LittleEndian.Uint64(data[i*8:])
			vals[i] = math.Float64frombits(u)
		}
	}
	return vals, isMz, isIntens, nil
}

// Instruments lists the mass analyzer names of the instrument
// configuration. The configuration list is stored as raw XML and
// unmarshalled on demand.
func (f *File) Instruments() ([]string, error) {
	if f.content.InstrumentConfigurationList == nil {
		return nil, nil
	}
	var conf struct {
		XMLName       xml.Name `xml:"instrumentConfiguration"`
		ComponentList struct {
			Analyzer []struct {
				CvPar []cvParam `xml:"cvParam"`
			} `xml:"analyzer"`
		} `xml:"componentList"`
	}
	err := xml.Unmarshal(f.content.InstrumentConfigurationList.InstrumentConfigurationListXML, &conf)
	if err != nil {
		return nil, fmt.Errorf("mzml: instrument configuration: %w", err)
	}
	var names []string
	for _, a := range conf.ComponentList.Analyzer {
		for _, cv := range a.CvPar {
			names = append(names, cv.Name)
		}
	}
	return names, nil
}
