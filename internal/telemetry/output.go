// Package telemetry writes per-generation training statistics to CSV.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// GenerationsFile is the CSV file name inside the output directory.
const GenerationsFile = "generations.csv"

// GenerationRecord is one row of generations.csv.
type GenerationRecord struct {
	RunID       string  `csv:"run_id"`
	Generation  int     `csv:"generation"`
	BestFitness float64 `csv:"best_fitness"`
	MeanFitness float64 `csv:"mean_fitness"`
	StdDev      float64 `csv:"stddev_fitness"`
	MinFitness  float64 `csv:"min_fitness"`
	Score       int     `csv:"score"`
	Ticks       int     `csv:"ticks"`
	Species     int     `csv:"species"`
	Faults      int     `csv:"faults"`
	State       string  `csv:"state"`
	ElapsedMS   int64   `csv:"elapsed_ms"`
}

// Output writes training telemetry into a directory.
// A nil *Output is valid and discards everything.
type Output struct {
	dir           string
	file          *os.File
	headerWritten bool
}

// NewOutput creates the output directory and generations.csv.
// Returns nil if dir is empty (output disabled).
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, GenerationsFile))
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", GenerationsFile, err)
	}

	return &Output{dir: dir, file: f}, nil
}

// WriteGeneration appends one record, writing the header first.
func (o *Output) WriteGeneration(rec GenerationRecord) error {
	if o == nil {
		return nil
	}

	records := []GenerationRecord{rec}

	if !o.headerWritten {
		if err := gocsv.Marshal(records, o.file); err != nil {
			return fmt.Errorf("telemetry: writing generation: %w", err)
		}
		o.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, o.file); err != nil {
		return fmt.Errorf("telemetry: writing generation: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Path returns the path of a file inside the output directory.
func (o *Output) Path(name string) string {
	if o == nil {
		return ""
	}
	return filepath.Join(o.dir, name)
}

// Close closes the CSV file.
func (o *Output) Close() error {
	if o == nil || o.file == nil {
		return nil
	}
	return o.file.Close()
}

// ReadGenerations loads every record from a generations.csv file.
func ReadGenerations(path string) ([]GenerationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: opening %s: %w", path, err)
	}
	defer f.Close()

	var records []GenerationRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("telemetry: reading %s: %w", path, err)
	}
	return records, nil
}
