// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package database

import "time"

// Configuration describes the configuration for the catalog store.
type Configuration struct {
	// Driver defines the driver for the database: sqlite, mysql or postgres
	Driver string `validate:"required,oneof=sqlite mysql postgres"`
	// DSN defines the DSN to connect to the database
	DSN string `validate:"required"`
	// Table is the name of the table holding the catalog
	Table string `validate:"required"`
	// Timeout is the maximum time to load the catalog
	Timeout time.Duration `validate:"min=1s"`
}

// DefaultConfiguration represents the default configuration for the
// catalog store.
func DefaultConfiguration() Configuration {
	return Configuration{
		Driver:  "sqlite",
		DSN:     "DistroWatch.db",
		Table:   "distros",
		Timeout: 30 * time.Second,
	}
}
