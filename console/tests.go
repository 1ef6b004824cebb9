// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

//go:build !release

package console

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"dwexplorer/catalog"
	"dwexplorer/catalog/database"
	"dwexplorer/common/helpers"
	"dwexplorer/common/httpserver"
	"dwexplorer/common/reporter"
)

// NewMock instantiates a console serving the provided raw rows.
func NewMock(t *testing.T, config Configuration, rows []catalog.RawRecord) (*Component, *httpserver.Component, *reporter.Reporter, *clock.Mock) {
	t.Helper()
	r := reporter.NewMock(t)
	h := httpserver.NewMock(t, r)
	mockClock := clock.NewMock()
	mockClock.Set(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	c, err := New(r, config, Dependencies{
		HTTP:     h,
		Database: database.NewMock(t, r, rows),
		Clock:    mockClock,
	})
	if err != nil {
		t.Fatalf("New() error:\n%+v", err)
	}
	helpers.StartStop(t, c)
	return c, h, r, mockClock
}
