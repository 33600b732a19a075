// Package dataset converts and inspects input datasets so they can be
// submitted to the prediction backend, which only accepts CSV.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Converter turns a parquet dataset into a CSV file the backend can
// consume. Leaf column names become the CSV header.
type Converter struct {
	inputPath string
}

// NewConverter creates a converter for the given parquet file.
func NewConverter(inputPath string) *Converter {
	return &Converter{inputPath: inputPath}
}

// Convert writes up to sample rows (0 for all) to outputPath and
// returns the number of rows written, excluding the header.
func (c *Converter) Convert(outputPath string, sample int) (int, error) {
	file, err := os.Open(c.inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return 0, fmt.Errorf("failed to open parquet: %w", err)
	}

	columns := pf.Schema().Columns()
	header := make([]string, len(columns))
	for i, path := range columns {
		header[i] = strings.Join(path, ".")
	}

	slog.Debug("Parquet file opened", "rows", pf.NumRows(), "columns", len(header))

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}

	written, err := c.copyRows(pf, w, len(header), sample)
	if err != nil {
		return written, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return written, fmt.Errorf("failed to flush CSV: %w", err)
	}

	slog.Info("Converted dataset", "input", c.inputPath, "output", outputPath, "rows", written)
	return written, nil
}

func (c *Converter) copyRows(pf *parquet.File, w *csv.Writer, width, sample int) (int, error) {
	written := 0
	buf := make([]parquet.Row, 128) // read in batches

	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()

		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				record := make([]string, width)
				for _, value := range row {
					if col := value.Column(); col >= 0 && col < width {
						record[col] = formatValue(value)
					}
				}
				if werr := w.Write(record); werr != nil {
					rows.Close()
					return written, fmt.Errorf("failed to write CSV row: %w", werr)
				}
				written++
				if sample > 0 && written >= sample {
					rows.Close()
					return written, nil
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return written, fmt.Errorf("failed to read parquet rows: %w", err)
			}
		}

		if err := rows.Close(); err != nil {
			return written, fmt.Errorf("failed to close row reader: %w", err)
		}
	}

	return written, nil
}

func formatValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
