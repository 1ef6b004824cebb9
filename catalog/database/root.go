// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package database reads the raw catalog from a relational store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dwexplorer/catalog"
	"dwexplorer/common/reporter"
)

// Component represents the catalog store component.
type Component struct {
	r      *reporter.Reporter
	config Configuration

	db      *gorm.DB
	metrics metrics
}

// New creates a new catalog store component.
func New(r *reporter.Reporter, configuration Configuration) (*Component, error) {
	c := Component{
		r:      r,
		config: configuration,
	}
	var dialector gorm.Dialector
	switch c.config.Driver {
	case "sqlite":
		dialector = sqlite.Open(c.config.DSN)
	case "mysql":
		dialector = mysql.Open(c.config.DSN)
	case "postgres":
		dialector = postgres.Open(c.config.DSN)
	default:
		return nil, fmt.Errorf("%q is not a supported driver", c.config.Driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: &logger{r},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	c.db = db
	c.initMetrics()
	return &c, nil
}

// Start starts the catalog store component.
func (c *Component) Start() error {
	c.r.Info().Str("driver", c.config.Driver).Msg("starting database component")
	c.r.RegisterHealthcheck("database", c.healthcheck)
	return nil
}

// Stop stops the catalog store component.
func (c *Component) Stop() error {
	defer c.r.Info().Msg("database component stopped")
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *Component) healthcheck(ctx context.Context) reporter.HealthcheckResult {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return reporter.HealthcheckResult{
			Status: reporter.HealthcheckError,
			Reason: fmt.Sprintf("cannot reach database: %s", err),
		}
	}
	return reporter.HealthcheckResult{
		Status: reporter.HealthcheckOK,
		Reason: "database reachable",
	}
}

// Source describes where the catalog is read from.
func (c *Component) Source() string {
	return fmt.Sprintf("%s table %q", c.config.Driver, c.config.Table)
}

// Load reads all rows of the catalog table, in storage order. A
// missing table or column is reported as a *catalog.LoadError.
func (c *Component) Load(ctx context.Context) ([]catalog.RawRecord, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()
	records, err := c.load(ctx)
	c.metrics.loadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.loads.WithLabelValues("error").Inc()
		return nil, &catalog.LoadError{Source: c.Source(), Err: err}
	}
	c.metrics.loads.WithLabelValues("ok").Inc()
	c.metrics.rowsLoaded.Set(float64(len(records)))
	c.r.Info().Int("rows", len(records)).Str("source", c.Source()).Msg("catalog loaded")
	return records, nil
}

func (c *Component) load(ctx context.Context) ([]catalog.RawRecord, error) {
	db := c.db.WithContext(ctx)
	migrator := db.Migrator()
	if !migrator.HasTable(c.config.Table) {
		return nil, catalog.ErrMissingTable
	}
	columnTypes, err := migrator.ColumnTypes(c.config.Table)
	if err != nil {
		return nil, fmt.Errorf("cannot inspect columns: %w", err)
	}
	present := make(map[string]bool, len(columnTypes))
	for _, ct := range columnTypes {
		present[ct.Name()] = true
	}
	for _, column := range catalog.Columns {
		if !present[column] {
			return nil, fmt.Errorf("%w %q", catalog.ErrMissingColumn, column)
		}
	}

	var rows []distro
	if err := db.Table(c.config.Table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("cannot read rows: %w", err)
	}
	records := make([]catalog.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.raw())
	}
	return records, nil
}

// Seed appends raw rows to the catalog table, creating it when needed.
func (c *Component) Seed(ctx context.Context, records []catalog.RawRecord) error {
	db := c.db.WithContext(ctx)
	if err := db.Table(c.config.Table).AutoMigrate(&distro{}); err != nil {
		return fmt.Errorf("cannot create table %q: %w", c.config.Table, err)
	}
	if len(records) == 0 {
		return nil
	}
	rows := make([]distro, 0, len(records))
	for _, record := range records {
		rows = append(rows, fromRaw(record))
	}
	if err := db.Table(c.config.Table).CreateInBatches(rows, 100).Error; err != nil {
		return fmt.Errorf("cannot insert rows: %w", err)
	}
	c.metrics.rowsSeeded.Add(float64(len(rows)))
	c.r.Info().Int("rows", len(rows)).Str("source", c.Source()).Msg("catalog seeded")
	return nil
}
