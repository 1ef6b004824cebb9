// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"dwexplorer/catalog"
	"dwexplorer/common/helpers"
	"dwexplorer/common/reporter"
)

func ptr(s string) *string {
	return &s
}

func TestLoad(t *testing.T) {
	r := reporter.NewMock(t)
	rows := []catalog.RawRecord{
		{
			Name:         ptr("Ubuntu (LTS)"),
			OSType:       ptr("Linux"),
			BasedOn:      ptr("Debian (Testing)"),
			Architecture: ptr("x86_64"),
			Desktop:      ptr("GNOME"),
			Popularity:   ptr("5 10000"),
			Origin:       ptr("United Kingdom"),
		}, {
			Name:    ptr("Debian (Testing)"),
			OSType:  ptr("Linux"),
			BasedOn: ptr("Independent"),
		},
	}
	c := NewMock(t, r, rows)

	got, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error:\n%+v", err)
	}
	if diff := helpers.Diff(got, rows); diff != "" {
		t.Fatalf("Load() (-got, +want):\n%s", diff)
	}

	// Seeding again appends rows.
	if err := c.Seed(context.Background(), rows[:1]); err != nil {
		t.Fatalf("Seed() error:\n%+v", err)
	}
	got, err = c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error:\n%+v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Load() returned %d rows, expected 3", len(got))
	}

	gotMetrics := r.GetMetrics("dwexplorer_catalog_database_", "rows_", "loads_")
	expectedMetrics := map[string]string{
		`rows_loaded`:               "3",
		`rows_seeded_total`:         "3",
		`loads_total{status="ok"}`: "2",
	}
	if diff := helpers.Diff(gotMetrics, expectedMetrics); diff != "" {
		t.Fatalf("Metrics (-got, +want):\n%s", diff)
	}
}

func TestLoadEmptyTable(t *testing.T) {
	r := reporter.NewMock(t)
	c := NewMock(t, r, []catalog.RawRecord{})
	got, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error:\n%+v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load() returned %d rows, expected 0", len(got))
	}
}

func TestLoadMissingTable(t *testing.T) {
	r := reporter.NewMock(t)
	c := NewMock(t, r, nil)
	_, err := c.Load(context.Background())
	var loadErr *catalog.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load() error is %v, expected a LoadError", err)
	}
	if !errors.Is(err, catalog.ErrMissingTable) {
		t.Fatalf("Load() error is %v, expected ErrMissingTable", err)
	}
	gotMetrics := r.GetMetrics("dwexplorer_catalog_database_", "loads_")
	expectedMetrics := map[string]string{
		`loads_total{status="error"}`: "1",
	}
	if diff := helpers.Diff(gotMetrics, expectedMetrics); diff != "" {
		t.Fatalf("Metrics (-got, +want):\n%s", diff)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	r := reporter.NewMock(t)
	c := NewMock(t, r, nil)
	if err := c.db.Exec(`CREATE TABLE distros ("Name" TEXT, "OS Type" TEXT)`).Error; err != nil {
		t.Fatalf("Exec() error:\n%+v", err)
	}
	_, err := c.Load(context.Background())
	if !errors.Is(err, catalog.ErrMissingColumn) {
		t.Fatalf("Load() error is %v, expected ErrMissingColumn", err)
	}
}

func TestLoadExtraColumns(t *testing.T) {
	r := reporter.NewMock(t)
	c := NewMock(t, r, nil)
	for _, sql := range []string{
		`CREATE TABLE distros ("index" INTEGER, "Name" TEXT, "OS Type" TEXT, "Based on" TEXT,
 "Architecture" TEXT, "Desktop" TEXT, "Popularity" TEXT, "Origin" TEXT, "Status" TEXT)`,
		`INSERT INTO distros VALUES (0, 'Gentoo Linux', 'Linux', 'Independent', NULL, NULL, '40 500', 'USA', 'Active')`,
	} {
		if err := c.db.Exec(sql).Error; err != nil {
			t.Fatalf("Exec() error:\n%+v", err)
		}
	}
	got, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error:\n%+v", err)
	}
	expected := []catalog.RawRecord{{
		Name:       ptr("Gentoo Linux"),
		OSType:     ptr("Linux"),
		BasedOn:    ptr("Independent"),
		Popularity: ptr("40 500"),
		Origin:     ptr("USA"),
	}}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("Load() (-got, +want):\n%s", diff)
	}
}

func TestHealthcheck(t *testing.T) {
	r := reporter.NewMock(t)
	NewMock(t, r, nil)
	got := r.RunHealthchecks(context.Background())
	if diff := helpers.Diff(got.Details["database"], reporter.HealthcheckResult{
		Status: reporter.HealthcheckOK,
		Reason: "database reachable",
	}); diff != "" {
		t.Fatalf("RunHealthchecks() (-got, +want):\n%s", diff)
	}
}

func TestUnknownDriver(t *testing.T) {
	r := reporter.NewMock(t)
	config := DefaultConfiguration()
	config.Driver = "oracle"
	config.DSN = filepath.Join(t.TempDir(), "catalog.db")
	if _, err := New(r, config); err == nil {
		t.Fatal("New() did not error")
	}
}

func TestConfigurationDecode(t *testing.T) {
	helpers.TestConfigurationDecode(t, helpers.ConfigurationDecodeCases{
		{
			Description:   "defaults",
			Initial:       func() any { return DefaultConfiguration() },
			Configuration: func() any { return gin.H{} },
			Expected:      DefaultConfiguration(),
		}, {
			Description: "postgres",
			Initial:     func() any { return DefaultConfiguration() },
			Configuration: func() any {
				return gin.H{
					"driver": "postgres",
					"dsn":    "host=localhost user=dw dbname=dw",
					"table":  "catalog",
				}
			},
			Expected: Configuration{
				Driver:  "postgres",
				DSN:     "host=localhost user=dw dbname=dw",
				Table:   "catalog",
				Timeout: DefaultConfiguration().Timeout,
			},
		}, {
			Description: "unknown driver",
			Initial:     func() any { return DefaultConfiguration() },
			Configuration: func() any {
				return gin.H{"driver": "oracle"}
			},
			Error: true,
		}, {
			Description: "empty table",
			Initial:     func() any { return DefaultConfiguration() },
			Configuration: func() any {
				return gin.H{"table": ""}
			},
			Error: true,
		},
	})
}
