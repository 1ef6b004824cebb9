// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package console exposes the catalog views over HTTP.
package console

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/paulmach/orb/geojson"

	"dwexplorer/catalog"
	"dwexplorer/catalog/countries"
	"dwexplorer/catalog/database"
	"dwexplorer/catalog/views"
	"dwexplorer/common/httpserver"
	"dwexplorer/common/reporter"
)

// Component represents the console component.
type Component struct {
	r      *reporter.Reporter
	d      *Dependencies
	config Configuration

	normalizer *catalog.Normalizer
	geometry   *geojson.FeatureCollection
	views      *views.Views
	loadedAt   time.Time

	metrics struct {
		viewBuilds *reporter.CounterVec
		warnings   *reporter.CounterVec
		rows       reporter.Gauge
	}
}

// Dependencies define the dependencies of the console component.
type Dependencies struct {
	HTTP     *httpserver.Component
	Database *database.Component
	Clock    clock.Clock
}

// New creates a new console component.
func New(r *reporter.Reporter, config Configuration, dependencies Dependencies) (*Component, error) {
	if dependencies.Clock == nil {
		dependencies.Clock = clock.New()
	}
	c := Component{
		r:          r,
		d:          &dependencies,
		config:     config,
		normalizer: catalog.NewNormalizer(),
	}
	if config.Geometry != "" {
		geometry, err := views.LoadGeometry(config.Geometry)
		if err != nil {
			return nil, err
		}
		c.geometry = geometry
	}

	c.metrics.viewBuilds = c.r.CounterVec(
		reporter.CounterOpts{
			Name: "view_builds_total",
			Help: "Number of times a view was computed.",
		}, []string{"view"},
	)
	c.metrics.warnings = c.r.CounterVec(
		reporter.CounterOpts{
			Name: "normalization_warnings_total",
			Help: "Number of rows degraded during normalization.",
		}, []string{"kind"},
	)
	c.metrics.rows = c.r.Gauge(
		reporter.GaugeOpts{
			Name: "dataset_rows",
			Help: "Number of rows in the canonical dataset.",
		},
	)
	c.normalizer.OnWarning = func(w catalog.Warning) {
		c.metrics.warnings.WithLabelValues(string(w.Kind)).Inc()
		c.r.Debug().Str("name", w.Name).Str("value", w.Value).Msg(w.String())
	}
	return &c, nil
}

// Start loads the catalog and registers the HTTP routes. A load error is
// fatal.
func (c *Component) Start() error {
	c.r.Info().Msg("starting console component")
	raw, err := c.d.Database.Load(context.Background())
	if err != nil {
		return fmt.Errorf("cannot start console: %w", err)
	}
	dataset := c.normalizer.Normalize(raw)
	c.loadedAt = c.d.Clock.Now()
	c.metrics.rows.Set(float64(dataset.Len()))
	c.views = views.New(dataset, views.Options{
		TopN:     c.config.TopN,
		Resolver: countries.Default(),
		Geometry: c.geometry,
		OnBuild: func(view string) {
			c.metrics.viewBuilds.WithLabelValues(view).Inc()
		},
	})
	c.r.Info().
		Int("raw", len(raw)).
		Int("rows", dataset.Len()).
		Msg("catalog normalized")
	c.r.RegisterHealthcheck("console", c.healthcheck)

	endpoint := c.d.HTTP.GinRouter.Group("/api/v0/console")
	cache := c.d.HTTP.CacheByRequestPath(c.config.CacheTTL)
	endpoint.GET("/configuration", c.configHandlerFunc)
	endpoint.GET("/widget/counts", cache, c.widgetCountsHandlerFunc)
	endpoint.GET("/widget/geo", cache, c.widgetGeoHandlerFunc)
	endpoint.GET("/widget/architectures", cache, c.widgetArchitecturesHandlerFunc)
	endpoint.GET("/widget/desktops", cache, c.widgetDesktopsHandlerFunc)
	endpoint.GET("/widget/degrees", cache, c.widgetDegreesHandlerFunc)
	endpoint.GET("/widget/sankey", cache, c.widgetSankeyHandlerFunc)
	endpoint.GET("/widget/map", cache, c.widgetMapHandlerFunc)
	endpoint.GET("/widget/map/geometry", cache, c.widgetMapGeometryHandlerFunc)
	return nil
}

// Stop stops the console component.
func (c *Component) Stop() error {
	c.r.Info().Msg("console component stopped")
	return nil
}

func (c *Component) healthcheck(context.Context) reporter.HealthcheckResult {
	rows := c.views.Dataset().Len()
	if rows == 0 {
		return reporter.HealthcheckResult{
			Status: reporter.HealthcheckWarning,
			Reason: "catalog is empty",
		}
	}
	return reporter.HealthcheckResult{
		Status: reporter.HealthcheckOK,
		Reason: fmt.Sprintf("%d rows loaded", rows),
	}
}
