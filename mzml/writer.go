package mzml

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
)

const (
	mzMLVersion    = "1.1.0"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://psi.hupo.org/ms/mzml http://psidev.info/files/ms/mzML/xsd/mzML1.1.0.xsd"

	cvParamMzUnit     = `MS:1000040`
	cvParamCountsUnit = `MS:1000131`
)

// Write emits the file as indented mzML. Sections that were read as
// raw XML are written back verbatim.
func (f *File) Write(w io.Writer) error {
	content := mzMLContentWrite{
		Sl1:                         schemaLocation,
		Version:                     mzMLVersion,
		Sl2:                         xsiNamespace,
		CvList:                      f.content.CvList,
		FileDescription:             f.content.FileDescription,
		ReferenceableParamGroupList: f.content.ReferenceableParamGroupList,
		SoftwareList:                f.content.SoftwareList,
		InstrumentConfigurationList: f.content.InstrumentConfigurationList,
		DataProcessingList:          f.content.DataProcessingList,
		Run:                         f.content.Run,
	}
	out, err := xml.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("mzml: write: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// SetScanPeaks replaces the binary data arrays of one spectrum with
// the given m/z and intensity values, encoded as little endian floats
// of the requested width, zlib compressed when asked.
func (f *File) SetScanPeaks(scanIndex int, mz, intens []float64, bits64, compress bool) error {
	if scanIndex < 0 || scanIndex >= f.NumSpectra() {
		return ErrInvalidScanIndex
	}
	if len(mz) != len(intens) {
		return fmt.Errorf("mzml: m/z and intensity arrays differ in length")
	}
	mzBin, err := encodeArray(mz, bits64, compress)
	if err != nil {
		return fmt.Errorf("mzml: encode m/z array: %w", err)
	}
	intensBin, err := encodeArray(intens, bits64, compress)
	if err != nil {
		return fmt.Errorf("mzml: encode intensity array: %w", err)
	}
	sp := &f.content.Run.SpectrumList.Spectrum[scanIndex]
	sp.DefaultArrayLength = int64(len(mz))
	sp.BinaryDataArrayList = binaryDataArrayList{
		Count: 2,
		BinaryDataArray: []binaryDataArray{
			{
				EncodedLength: len(mzBin),
				CvPar:         arrayCvParams(cvParamMzArray, "m/z array", cvParamMzUnit, "m/z", bits64, compress),
				Binary:        mzBin,
			},
			{
				EncodedLength: len(intensBin),
				CvPar:         arrayCvParams(cvParamIntensityArray, "intensity array", cvParamCountsUnit, "number of detector counts", bits64, compress),
				Binary:        intensBin,
			},
		},
	}
	return nil
}

func arrayCvParams(kindAcc, kindName, unitAcc, unitName string, bits64, compress bool) []cvParam {
	precAcc, precName := cvParam32bitFloat, "32-bit float"
	if bits64 {
		precAcc, precName = cvParam64bitFloat, "64-bit float"
	}
	compAcc, compName := cvParamNoCompression, "no compression"
	if compress {
		compAcc, compName = cvParamZlibCompression, "zlib compression"
	}
	return []cvParam{
		{CvRef: "MS", Accession: precAcc, Name: precName},
		{CvRef: "MS", Accession: compAcc, Name: compName},
		{CvRef: "MS", Accession: kindAcc, Name: kindName, UnitCvRef: "MS", UnitAccession: unitAcc, UnitName: unitName},
	}
}

func encodeArray(vals []float64, bits64, compress bool) (string, error) {
	var raw bytes.Buffer
	if bits64 {
		b := make([]byte, 8)
		for _, v := range vals {
			binary.LittleEndian.PutUint64(b, math.Float64bits(v))
			raw.Write(b)
		}
	} else {
		b := make([]byte, 4)
		for _, v := range vals {
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
			raw.Write(b)
		}
	}
	data := raw.Bytes()
	if compress {
		var z bytes.Buffer
		zw := zlib.NewWriter(&z)
		if _, err := zw.Write(data); err != nil {
			zw.Close()
			return "", err
		}
		if err := zw.Close(); err != nil {
			return "", err
		}
		data = z.Bytes()
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
