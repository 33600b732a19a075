package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ml-workshop/predictor/internal/dataset"
	"github.com/spf13/cobra"
)

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Prepare and inspect datasets for prediction",
		Long: `Tools for working with input datasets.

The backend only accepts CSV uploads; convert turns a parquet dataset
into CSV, and inspect shows row/column counts and the first rows of a
CSV or parquet file.`,
	}

	cmd.AddCommand(newDatasetConvertCmd())
	cmd.AddCommand(newDatasetInspectCmd())

	return cmd
}

func newDatasetConvertCmd() *cobra.Command {
	var inputPath string
	var outputPath string
	var sample int

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a parquet dataset to CSV",
		Example: `  # Convert a whole dataset
  predictor dataset convert --input data.parquet --output data.csv

  # Take the first 100 rows only
  predictor dataset convert --input data.parquet --output data.csv --sample 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = strings.TrimSuffix(inputPath, ".parquet") + ".csv"
			}

			written, err := dataset.NewConverter(inputPath).Convert(outputPath, sample)
			if err != nil {
				return fmt.Errorf("failed to convert dataset: %w", err)
			}

			fmt.Printf("Wrote %d rows to %s\n", written, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the parquet dataset (required)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Path to the CSV output (defaults to the input path with a .csv extension)")
	cmd.Flags().IntVar(&sample, "sample", 0, "Number of rows to convert (0 for all)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newDatasetInspectCmd() *cobra.Command {
	var inputPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show row/column counts and the first rows of a dataset",
		Example: `  # Inspect a CSV before uploading it
  predictor dataset inspect --input data.csv

  # Show the first 20 rows of a parquet file
  predictor dataset inspect --input data.parquet --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := dataset.Inspect(inputPath, limit)
			if err != nil {
				return err
			}

			stats.Print(os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to a CSV or parquet file (required)")
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of rows to preview (0 for none)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
