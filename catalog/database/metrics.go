// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package database

import "dwexplorer/common/reporter"

type metrics struct {
	rowsLoaded   reporter.Gauge
	loads        *reporter.CounterVec
	loadDuration reporter.Histogram
	rowsSeeded   reporter.Counter
}

func (c *Component) initMetrics() {
	c.metrics.rowsLoaded = c.r.Gauge(
		reporter.GaugeOpts{
			Name: "rows_loaded",
			Help: "Number of raw rows read during the last load.",
		},
	)
	c.metrics.loads = c.r.CounterVec(
		reporter.CounterOpts{
			Name: "loads_total",
			Help: "Number of catalog loads.",
		}, []string{"status"},
	)
	c.metrics.loadDuration = c.r.Histogram(
		reporter.HistogramOpts{
			Name:    "load_duration_seconds",
			Help:    "Time spent loading the catalog.",
			Buckets: []float64{.01, .05, .25, 1, 5},
		},
	)
	c.metrics.rowsSeeded = c.r.Counter(
		reporter.CounterOpts{
			Name: "rows_seeded_total",
			Help: "Number of rows written to the catalog table.",
		},
	)
}
