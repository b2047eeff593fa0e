package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"birmerge/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the segment report header row.
var Columns = []string{
	"Segment",
	"BDB",
	"Quality Score",
	"Type",
	"Subtype",
	"Creation Date",
	"Format Type",
}

// MaxBDBLength is the number of BDB characters kept in a report cell.
const MaxBDBLength = 32

// Writer wraps csv.Writer for exporting segment summaries as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteSegments converts segment summaries to CSV rows and writes them.
func (w *Writer) WriteSegments(segments []domain.SegmentSummary) error {
	for i := range segments {
		if err := w.csv.Write(Row(&segments[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Row converts a single segment summary to a slice with one cell per column.
func Row(s *domain.SegmentSummary) []string {
	return []string{
		strconv.Itoa(s.Index),
		TruncateBDB(s.BDB),
		s.QualityScore,
		strings.Join(s.Type, " "),
		strings.Join(s.Subtype, " "),
		s.CreationDate,
		s.FormatType,
	}
}

// TruncateBDB shortens long BDB payloads for display.
func TruncateBDB(bdb string) string {
	runes := []rune(bdb)
	if len(runes) <= MaxBDBLength {
		return bdb
	}
	return string(runes[:MaxBDBLength]) + "…"
}

// Report writes segment summaries to a CSV file. It implements
// port.ReportWriter.
type Report struct{}

// NewReport creates a CSV Report.
func NewReport() *Report {
	return &Report{}
}

func (r *Report) Suffix() string {
	return "_segments.csv"
}

func (r *Report) Write(path string, segments []domain.SegmentSummary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", domain.ErrFileIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", domain.ErrFileIO, path, cerr)
		}
	}()

	if _, err := f.Write(BOM); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrFileIO, path, err)
	}

	w := NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteSegments(segments); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flushing %s: %w", domain.ErrFileIO, path, err)
	}
	return nil
}
