// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dwexplorer/catalog"
	"dwexplorer/catalog/countries"
	"dwexplorer/catalog/database"
	"dwexplorer/catalog/views"
	"dwexplorer/common/reporter"
)

// ReportConfiguration represents the configuration file for the report
// command.
type ReportConfiguration struct {
	Reporting reporter.Configuration
	Database  database.Configuration
	// TopN is the number of bars kept in histograms.
	TopN int `validate:"min=1"`
	// Geometry is an optional GeoJSON file with country boundaries.
	Geometry string `validate:"omitempty,file"`
}

// Reset resets the report configuration to its default value.
func (c *ReportConfiguration) Reset() {
	*c = ReportConfiguration{
		Reporting: reporter.DefaultConfiguration(),
		Database:  database.DefaultConfiguration(),
		TopN:      views.DefaultTopN,
	}
}

type reportOptions struct {
	ConfigRelatedOptions
	Format string
}

// ReportOptions stores the command-line option values for the report
// command.
var ReportOptions reportOptions

var reportCmd = &cobra.Command{
	Use:   "report CONFIG",
	Short: "Print all views once",
	Long: `Load and normalize the catalog, then print every view as JSON or
YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ReportOptions.Format != "json" && ReportOptions.Format != "yaml" {
			return fmt.Errorf("unknown format %q", ReportOptions.Format)
		}
		config := ReportConfiguration{}
		config.Reset()
		ReportOptions.Path = args[0]
		if err := ReportOptions.Parse(cmd.ErrOrStderr(), "report", &config); err != nil {
			return err
		}

		r, err := reporter.New(config.Reporting)
		if err != nil {
			return fmt.Errorf("unable to initialize reporter: %w", err)
		}
		return reportRun(cmd.Context(), r, config, ReportOptions.Format, cmd.OutOrStdout())
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVarP(&ReportOptions.ConfigRelatedOptions.Dump, "dump", "D", false,
		"Dump configuration before running")
	reportCmd.Flags().StringVarP(&ReportOptions.Format, "format", "f", "json",
		"Output format (json or yaml)")
}

func reportRun(ctx context.Context, r *reporter.Reporter, config ReportConfiguration, format string, out io.Writer) error {
	var geometry *geojson.FeatureCollection
	if config.Geometry != "" {
		var err error
		geometry, err = views.LoadGeometry(config.Geometry)
		if err != nil {
			return err
		}
	}
	databaseComponent, err := database.New(r, config.Database)
	if err != nil {
		return fmt.Errorf("unable to initialize database component: %w", err)
	}
	defer databaseComponent.Stop()
	raw, err := databaseComponent.Load(ctx)
	if err != nil {
		return err
	}

	normalizer := catalog.NewNormalizer()
	normalizer.OnWarning = func(w catalog.Warning) {
		r.Warn().Str("name", w.Name).Str("value", w.Value).Msg(w.String())
	}
	report := views.New(normalizer.Normalize(raw), views.Options{
		TopN:     config.TopN,
		Resolver: countries.Default(),
		Geometry: geometry,
	}).Report()

	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("unable to encode report: %w", err)
		}
	default:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("unable to encode report: %w", err)
		}
	}
	return nil
}
