// Package speclib writes materialized spectra to a SQLite spectral
// library file.
package speclib

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/524D/mzindex/msdata"
)

const (
	schemaVersion = 1
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"
)

// Writer handles writing spectrum records to a SQLite library file.
type Writer struct {
	db           *sql.DB
	outputPath   string
	datasetRoot  string
	spectrumStmt *sql.Stmt
	paramStmt    *sql.Stmt
	numSpectra   int
}

// NewWriter creates a library file at outputPath. The datasetRoot is
// recorded in the header for provenance.
func NewWriter(outputPath, datasetRoot string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:          db,
		outputPath:  outputPath,
		datasetRoot: datasetRoot,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS SpectrumTable (
		SpectrumId INTEGER PRIMARY KEY,
		NativeId TEXT NOT NULL,
		SourcePath TEXT,
		MsLevel INTEGER,
		RetentionTime DOUBLE,
		Polarity TEXT,
		ScanBegin DOUBLE,
		ScanEnd DOUBLE,
		Centroided BOOL,
		NumPeaks INTEGER,
		blobMz BLOB,
		blobIntensity BLOB
	);

	CREATE TABLE IF NOT EXISTS ParameterTable (
		SpectrumId INTEGER REFERENCES SpectrumTable(SpectrumId),
		Position INTEGER,
		Name TEXT,
		Value TEXT
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		DatasetRoot TEXT,
		NumSpectra INTEGER,
		Generator TEXT
	);

	CREATE UNIQUE INDEX IF NOT EXISTS SpectrumNativeId ON SpectrumTable(NativeId);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.spectrumStmt, err = w.db.Prepare(`
		INSERT INTO SpectrumTable (
			SpectrumId, NativeId, SourcePath, MsLevel, RetentionTime,
			Polarity, ScanBegin, ScanEnd, Centroided, NumPeaks,
			blobMz, blobIntensity
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare spectrum statement: %w", err)
	}

	w.paramStmt, err = w.db.Prepare(`
		INSERT INTO ParameterTable (SpectrumId, Position, Name, Value)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare parameter statement: %w", err)
	}

	return nil
}

// WriteSpectrum writes a single spectrum record to the library. The
// record's ordinal is used as the spectrum id, so each ordinal can be
// written once per library.
func (w *Writer) WriteSpectrum(s msdata.Spectrum) error {
	mz := make([]float64, len(s.Peaks))
	intens := make([]float64, len(s.Peaks))
	for i, p := range s.Peaks {
		mz[i] = p.Mz
		intens[i] = p.Intens
	}

	_, err := w.spectrumStmt.Exec(
		s.Index,
		s.NativeID,
		s.SourcePath,
		s.Level,
		s.RetentionTime,
		s.Polarity,
		s.ScanBegin,
		s.ScanEnd,
		s.Centroided,
		len(s.Peaks),
		encodeFloat64s(mz),
		encodeFloat64s(intens),
	)
	if err != nil {
		return fmt.Errorf("failed to insert spectrum %s: %w", s.NativeID, err)
	}

	for pos, p := range s.Parameters {
		if _, err := w.paramStmt.Exec(s.Index, pos, p.Name, p.Value); err != nil {
			return fmt.Errorf("failed to insert parameter %s of %s: %w", p.Name, s.NativeID, err)
		}
	}

	w.numSpectra++
	return nil
}

// encodeFloat64s encodes values as a little-endian float64 blob
func encodeFloat64s(vals []float64) []byte {
	buf := make([]byte, len(vals)*8)
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize() error {
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, DatasetRoot, NumSpectra, Generator)
		VALUES (?, ?, ?, ?, ?)
	`, schemaVersion, time.Now().Format(headerDateFormat), w.datasetRoot, w.numSpectra, "mzindex")
	if err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}

	if w.spectrumStmt != nil {
		w.spectrumStmt.Close()
	}
	if w.paramStmt != nil {
		w.paramStmt.Close()
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the library (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}
