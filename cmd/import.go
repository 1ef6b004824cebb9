// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dwexplorer/catalog"
	"dwexplorer/catalog/database"
	"dwexplorer/common/reporter"
)

// ImportConfiguration represents the configuration file for the import
// command.
type ImportConfiguration struct {
	Reporting reporter.Configuration
	Database  database.Configuration
}

// Reset resets the import configuration to its default value.
func (c *ImportConfiguration) Reset() {
	*c = ImportConfiguration{
		Reporting: reporter.DefaultConfiguration(),
		Database:  database.DefaultConfiguration(),
	}
}

// ImportOptions stores the command-line option values for the import
// command.
var ImportOptions ConfigRelatedOptions

var importCmd = &cobra.Command{
	Use:   "import CONFIG CSV",
	Short: "Import a CSV file into the catalog table",
	Long: `Append the rows of a CSV file to the catalog table, creating it when
needed. The header row names the columns: Name, OS Type, Based on,
Architecture, Desktop, Popularity and Origin. Other columns are ignored.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := ImportConfiguration{}
		config.Reset()
		ImportOptions.Path = args[0]
		if err := ImportOptions.Parse(cmd.OutOrStdout(), "import", &config); err != nil {
			return err
		}

		r, err := reporter.New(config.Reporting)
		if err != nil {
			return fmt.Errorf("unable to initialize reporter: %w", err)
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("unable to open CSV file: %w", err)
		}
		defer f.Close()
		records, err := readCSV(f)
		if err != nil {
			return err
		}

		databaseComponent, err := database.New(r, config.Database)
		if err != nil {
			return fmt.Errorf("unable to initialize database component: %w", err)
		}
		defer databaseComponent.Stop()
		if err := databaseComponent.Seed(context.Background(), records); err != nil {
			return err
		}
		cmd.Printf("%d rows imported\n", len(records))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&ImportOptions.Dump, "dump", "D", false,
		"Dump configuration before importing")
}

// readCSV reads raw records from a CSV file with a header. Empty cells
// are absent values.
func readCSV(in io.Reader) ([]catalog.RawRecord, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read CSV header: %w", err)
	}
	indexes := map[string]int{}
	for idx, column := range header {
		indexes[column] = idx
	}
	for _, column := range catalog.Columns {
		if _, ok := indexes[column]; !ok {
			return nil, fmt.Errorf("%w %q in CSV header", catalog.ErrMissingColumn, column)
		}
	}

	records := []catalog.RawRecord{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read CSV line %d: %w", line, err)
		}
		cell := func(column string) *string {
			idx := indexes[column]
			if idx >= len(row) || row[idx] == "" {
				return nil
			}
			value := row[idx]
			return &value
		}
		records = append(records, catalog.RawRecord{
			Name:         cell("Name"),
			OSType:       cell("OS Type"),
			BasedOn:      cell("Based on"),
			Architecture: cell("Architecture"),
			Desktop:      cell("Desktop"),
			Popularity:   cell("Popularity"),
			Origin:       cell("Origin"),
		})
	}
	return records, nil
}
