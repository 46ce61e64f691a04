package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"offer-enrichment/models"
)

// CSVWriter writes collected offers to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(RawHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRaw appends offers to the file.
func (c *CSVWriter) WriteRaw(offers []*models.RawOffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, o := range offers {
		if err := c.writer.Write(rawRow(o)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// EnrichedCSVWriter writes the enriched table. The file only appears once
// every row is on disk: rows go to a temp file in the same directory which
// is renamed over path on success.
type EnrichedCSVWriter struct {
	path string
}

func NewEnrichedCSVWriter(path string) *EnrichedCSVWriter {
	return &EnrichedCSVWriter{path: path}
}

// Write replaces the file with offers. runID is not stored in the CSV.
func (e *EnrichedCSVWriter) Write(offers []*models.EnrichedOffer, _ string) error {
	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(e.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("csv: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(EnrichedHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, o := range offers {
		if err := w.Write(enrichedRow(o)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csv: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, e.path); err != nil {
		return fmt.Errorf("csv: rename to %q: %w", e.path, err)
	}
	committed = true
	return nil
}

func (e *EnrichedCSVWriter) Close() error { return nil }
