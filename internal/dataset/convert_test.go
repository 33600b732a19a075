package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type sampleRow struct {
	Feature1 float64 `parquet:"feature1"`
	Feature2 float64 `parquet:"feature2"`
	Label    string  `parquet:"label"`
}

func writeSampleParquet(t *testing.T, rows []sampleRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.parquet")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create parquet file: %v", err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[sampleRow](f)
	if _, err := w.Write(rows); err != nil {
		t.Fatalf("failed to write parquet rows: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close parquet writer: %v", err)
	}

	return path
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open CSV: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV: %v", err)
	}
	return records
}

func column(t *testing.T, header []string, name string) int {
	t.Helper()
	for i, h := range header {
		if h == name {
			return i
		}
	}
	t.Fatalf("column %q not found in header %v", name, header)
	return -1
}

func TestConvertWritesAllRows(t *testing.T) {
	input := writeSampleParquet(t, []sampleRow{
		{Feature1: 1.5, Feature2: 2, Label: "a"},
		{Feature1: 3, Feature2: 4.25, Label: "b"},
		{Feature1: 5, Feature2: 6, Label: "c"},
	})
	output := filepath.Join(t.TempDir(), "sample.csv")

	written, err := NewConverter(input).Convert(output, 0)
	if err != nil {
		t.Fatalf("expected conversion to succeed, got %v", err)
	}
	if written != 3 {
		t.Errorf("expected 3 rows written, got %d", written)
	}

	records := readCSV(t, output)
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d records", len(records))
	}

	labelCol := column(t, records[0], "label")
	if records[1][labelCol] != "a" || records[3][labelCol] != "c" {
		t.Errorf("unexpected label values: %v", records)
	}

	f1Col := column(t, records[0], "feature1")
	if records[1][f1Col] != "1.5" {
		t.Errorf("expected feature1 1.5 in first row, got %q", records[1][f1Col])
	}
}

func TestConvertSampleCapsRows(t *testing.T) {
	input := writeSampleParquet(t, []sampleRow{
		{Feature1: 1, Label: "a"},
		{Feature1: 2, Label: "b"},
		{Feature1: 3, Label: "c"},
		{Feature1: 4, Label: "d"},
	})
	output := filepath.Join(t.TempDir(), "sample.csv")

	written, err := NewConverter(input).Convert(output, 2)
	if err != nil {
		t.Fatalf("expected conversion to succeed, got %v", err)
	}
	if written != 2 {
		t.Errorf("expected 2 rows written, got %d", written)
	}

	records := readCSV(t, output)
	if len(records) != 3 {
		t.Errorf("expected header + 2 rows, got %d records", len(records))
	}
}

func TestInspectCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	contents := "a,b,c\n1,2,3\n4,5,6\n7,8,9\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	stats, err := Inspect(path, 2)
	if err != nil {
		t.Fatalf("expected inspect to succeed, got %v", err)
	}
	if stats.Rows != 3 {
		t.Errorf("expected 3 data rows, got %d", stats.Rows)
	}
	if len(stats.Columns) != 3 {
		t.Errorf("expected 3 columns, got %d", len(stats.Columns))
	}
	if len(stats.Preview) != 2 {
		t.Errorf("expected 2 preview rows, got %d", len(stats.Preview))
	}
}

func TestInspectUnsupportedFormat(t *testing.T) {
	if _, err := Inspect("data.xlsx", 0); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}
