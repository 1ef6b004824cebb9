// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dwexplorer/catalog/database"
	"dwexplorer/common/daemon"
	"dwexplorer/common/httpserver"
	"dwexplorer/common/reporter"
	"dwexplorer/console"
)

// ConsoleConfiguration represents the configuration file for the console command.
type ConsoleConfiguration struct {
	Reporting reporter.Configuration
	HTTP      httpserver.Configuration
	Database  database.Configuration
	Console   console.Configuration `mapstructure:",squash" yaml:",inline"`
}

// Reset resets the console configuration to its default value.
func (c *ConsoleConfiguration) Reset() {
	*c = ConsoleConfiguration{
		Reporting: reporter.DefaultConfiguration(),
		HTTP:      httpserver.DefaultConfiguration(),
		Database:  database.DefaultConfiguration(),
		Console:   console.DefaultConfiguration(),
	}
}

type consoleOptions struct {
	ConfigRelatedOptions
	CheckMode bool
}

// ConsoleOptions stores the command-line option values for the console
// command.
var ConsoleOptions consoleOptions

var consoleCmd = &cobra.Command{
	Use:   "console CONFIG",
	Short: "Start the console service",
	Long: `The console service loads the catalog once and exposes its views
(counts, countries, architectures, desktops, derivations) over HTTP.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := ConsoleConfiguration{}
		config.Reset()
		ConsoleOptions.Path = args[0]
		if err := ConsoleOptions.Parse(cmd.OutOrStdout(), "console", &config); err != nil {
			return err
		}
		config.Console.Version = Version

		r, err := reporter.New(config.Reporting)
		if err != nil {
			return fmt.Errorf("unable to initialize reporter: %w", err)
		}
		return consoleStart(r, config, ConsoleOptions.CheckMode)
	},
}

func init() {
	RootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().BoolVarP(&ConsoleOptions.ConfigRelatedOptions.Dump, "dump", "D", false,
		"Dump configuration before starting")
	consoleCmd.Flags().BoolVarP(&ConsoleOptions.CheckMode, "check", "C", false,
		"Check configuration, but does not start")
}

func consoleStart(r *reporter.Reporter, config ConsoleConfiguration, checkOnly bool) error {
	daemonComponent, err := daemon.New(r)
	if err != nil {
		return fmt.Errorf("unable to initialize daemon component: %w", err)
	}
	httpComponent, err := httpserver.New(r, config.HTTP, httpserver.Dependencies{
		Daemon: daemonComponent,
	})
	if err != nil {
		return fmt.Errorf("unable to initialize HTTP component: %w", err)
	}
	databaseComponent, err := database.New(r, config.Database)
	if err != nil {
		return fmt.Errorf("unable to initialize database component: %w", err)
	}
	consoleComponent, err := console.New(r, config.Console, console.Dependencies{
		HTTP:     httpComponent,
		Database: databaseComponent,
	})
	if err != nil {
		return fmt.Errorf("unable to initialize console component: %w", err)
	}

	// Expose some informations and metrics
	addCommonHTTPHandlers(r, "console", httpComponent)
	versionMetrics(r)

	// If we only asked for a check, stop here.
	if checkOnly {
		return databaseComponent.Stop()
	}

	// Start all the components.
	components := []any{
		httpComponent,
		databaseComponent,
		consoleComponent,
	}
	return StartStopComponents(r, daemonComponent, components)
}
