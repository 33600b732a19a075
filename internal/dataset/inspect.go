package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Stats summarizes a dataset file
type Stats struct {
	Rows    int
	Columns []string
	Preview [][]string
}

// Inspect reads row/column counts and the first limit rows from a CSV
// or parquet file. The header row of a CSV is not counted as data.
func Inspect(path string, limit int) (*Stats, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return inspectCSV(path, limit)
	case ".parquet":
		return inspectParquet(path, limit)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .parquet)", ext)
	}
}

func inspectCSV(path string, limit int) (*Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	stats := &Stats{Columns: header}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", stats.Rows+1, err)
		}
		if limit <= 0 || len(stats.Preview) < limit {
			stats.Preview = append(stats.Preview, record)
		}
		stats.Rows++
	}

	return stats, nil
}

func inspectParquet(path string, limit int) (*Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	columns := pf.Schema().Columns()
	stats := &Stats{Rows: int(pf.NumRows())}
	for _, path := range columns {
		stats.Columns = append(stats.Columns, strings.Join(path, "."))
	}

	if limit > 0 {
		buf := make([]parquet.Row, limit)
		for _, rg := range pf.RowGroups() {
			rows := rg.Rows()
			n, err := rows.ReadRows(buf)
			rows.Close()
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read parquet rows: %w", err)
			}
			for _, row := range buf[:n] {
				record := make([]string, len(stats.Columns))
				for _, value := range row {
					if col := value.Column(); col >= 0 && col < len(record) {
						record[col] = formatValue(value)
					}
				}
				stats.Preview = append(stats.Preview, record)
				if len(stats.Preview) >= limit {
					return stats, nil
				}
			}
		}
	}

	return stats, nil
}

// Print writes the stats in the same text style the prediction
// renderer uses.
func (s *Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "Rows:    %d\n", s.Rows)
	fmt.Fprintf(w, "Columns: %d (%s)\n", len(s.Columns), strings.Join(s.Columns, ", "))
	if len(s.Preview) > 0 {
		fmt.Fprintln(w)
		for _, record := range s.Preview {
			fmt.Fprintln(w, strings.Join(record, ", "))
		}
	}
}
