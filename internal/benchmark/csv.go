package benchmark

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sortbench/internal/dataset"
)

// Column names of the results file.
var (
	baseHeader   = []string{"Size", "Type", "BubbleSortTime", "MergeSortTime", "QuickSortTime"}
	statusHeader = "Status"
)

// CSVSink writes records in the results-file format. Without the Status
// column a failed configuration cannot be marked, so it is omitted.
type CSVSink struct {
	w          *csv.Writer
	withStatus bool
	written    int
	omitted    int
}

// NewCSVSink writes the header immediately and returns the sink.
func NewCSVSink(w io.Writer, withStatus bool) (*CSVSink, error) {
	s := &CSVSink{w: csv.NewWriter(w), withStatus: withStatus}
	header := baseHeader
	if withStatus {
		header = append(append([]string(nil), baseHeader...), statusHeader)
	}
	if err := s.w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return s, nil
}

// Write appends one row and flushes it so partial sweeps stay readable.
func (s *CSVSink) Write(rec Record) error {
	if rec.Failed() && !s.withStatus {
		s.omitted++
		return nil
	}
	row := []string{
		strconv.Itoa(rec.Size),
		rec.Shape.String(),
		formatMs(rec.BubbleMs),
		formatMs(rec.MergeMs),
		formatMs(rec.QuickMs),
	}
	if s.withStatus {
		row = append(row, string(rec.Status))
	}
	if err := s.w.Write(row); err != nil {
		return err
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return err
	}
	s.written++
	return nil
}

// Counts returns how many rows were written and how many failed records were omitted.
func (s *CSVSink) Counts() (written, omitted int) {
	return s.written, s.omitted
}

func formatMs(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadCSV parses a results file with or without the Status column. Rows
// from files without it are treated as successful.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty results file")
		}
		return nil, err
	}
	withStatus, err := checkHeader(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		rec, err := parseRow(row, withStatus)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

func checkHeader(header []string) (bool, error) {
	if len(header) < len(baseHeader) || len(header) > len(baseHeader)+1 {
		return false, fmt.Errorf("unexpected header %v", header)
	}
	for i, col := range baseHeader {
		if strings.TrimSpace(header[i]) != col {
			return false, fmt.Errorf("unexpected column %q at position %d, want %q", header[i], i, col)
		}
	}
	if len(header) == len(baseHeader)+1 {
		if strings.TrimSpace(header[len(baseHeader)]) != statusHeader {
			return false, fmt.Errorf("unexpected trailing column %q", header[len(baseHeader)])
		}
		return true, nil
	}
	return false, nil
}

func parseRow(row []string, withStatus bool) (Record, error) {
	want := len(baseHeader)
	if withStatus {
		want++
	}
	if len(row) != want {
		return Record{}, fmt.Errorf("expected %d fields, got %d", want, len(row))
	}

	var rec Record
	var err error
	if rec.Size, err = strconv.Atoi(row[0]); err != nil {
		return Record{}, fmt.Errorf("invalid size %q: %w", row[0], err)
	}
	if rec.Shape, err = dataset.ParseShape(row[1]); err != nil {
		return Record{}, err
	}
	means := []*float64{&rec.BubbleMs, &rec.MergeMs, &rec.QuickMs}
	for i, dst := range means {
		if *dst, err = strconv.ParseFloat(row[2+i], 64); err != nil {
			return Record{}, fmt.Errorf("invalid %s %q: %w", baseHeader[2+i], row[2+i], err)
		}
	}

	rec.Status = StatusSuccess
	if withStatus {
		switch Status(row[5]) {
		case StatusSuccess, StatusFailure:
			rec.Status = Status(row[5])
		default:
			return Record{}, fmt.Errorf("invalid status %q", row[5])
		}
	}
	return rec, nil
}

// MultiSink writes each record to every sink in order.
type MultiSink []Sink

func (m MultiSink) Write(rec Record) error {
	for _, s := range m {
		if err := s.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Collector keeps every record in memory, for run history and reports.
type Collector struct {
	Records []Record
}

func (c *Collector) Write(rec Record) error {
	c.Records = append(c.Records, rec)
	return nil
}
