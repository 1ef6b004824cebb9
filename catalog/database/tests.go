// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

//go:build !release

package database

import (
	"context"
	"path/filepath"
	"testing"

	"dwexplorer/catalog"
	"dwexplorer/common/helpers"
	"dwexplorer/common/reporter"
)

// NewMock instantiates a catalog store backed by a fresh SQLite file
// seeded with the provided rows. When rows is nil, the table is not
// created.
func NewMock(t *testing.T, r *reporter.Reporter, rows []catalog.RawRecord) *Component {
	t.Helper()
	config := DefaultConfiguration()
	config.DSN = filepath.Join(t.TempDir(), "catalog.db")
	c, err := New(r, config)
	if err != nil {
		t.Fatalf("New() error:\n%+v", err)
	}
	helpers.StartStop(t, c)
	if rows != nil {
		if err := c.Seed(context.Background(), rows); err != nil {
			t.Fatalf("Seed() error:\n%+v", err)
		}
	}
	return c
}
