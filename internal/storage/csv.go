package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one CSV record keyed by lower-cased header name. Keys and values are
// trimmed of surrounding whitespace.
type Row map[string]string

// Flag reads a yes/no column. Anything other than "yes" is false.
func (r Row) Flag(col string) bool {
	return strings.EqualFold(r[col], "yes")
}

// Ref reads a column that names another record. Empty and "None" mean no reference.
func (r Row) Ref(col string) string {
	v := r[col]
	if v == "" || strings.EqualFold(v, "none") {
		return ""
	}
	return v
}

// List reads a ';' separated column, dropping empty entries.
func (r Row) List(col string) []string {
	var out []string
	for _, part := range strings.Split(r[col], ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ReadCSVFile reads a headed CSV file.
func ReadCSVFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV reads a headed CSV stream. Rows may be shorter than the header;
// missing columns read as empty.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
