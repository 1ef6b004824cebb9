// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package console

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"dwexplorer/catalog/views"
	"dwexplorer/common/helpers"
)

func TestWidgets(t *testing.T) {
	_, h, r, _ := NewMock(t, DefaultConfiguration(), sampleRows())

	cases := helpers.HTTPEndpointCases{
		{
			URL:        "/api/v0/console/widget/counts",
			JSONOutput: gin.H{"total": 3, "linux": 2, "bsd": 1, "other": 0},
		}, {
			URL: "/api/v0/console/widget/geo",
			JSONOutput: []gin.H{
				{"code": "CAN", "label": "Canada", "count": 1, "names": "GhostBSD"},
				{"code": "GBR", "label": "United Kingdom", "count": 1, "names": "Ubuntu"},
			},
		}, {
			URL: "/api/v0/console/widget/architectures",
			JSONOutput: gin.H{
				"title": "Top 20 Supported Architectures",
				"bars": []gin.H{
					{"label": "x86_64", "value": 3},
					{"label": "arm64", "value": 1},
				},
			},
		}, {
			URL: "/api/v0/console/widget/desktops",
			JSONOutput: gin.H{
				"title": "Top 20 Supported Desktops",
				"bars": []gin.H{
					{"label": "GNOME", "value": 2},
					{"label": "KDE", "value": 1},
					{"label": "MATE", "value": 1},
				},
			},
		}, {
			URL: "/api/v0/console/widget/degrees",
			JSONOutput: gin.H{
				"title": "Distribution Importance for Derivatives",
				"bars": []gin.H{
					{"label": "Debian", "value": 2},
					{"label": "FreeBSD", "value": 1},
					{"label": "GhostBSD", "value": 1},
					{"label": "Ubuntu", "value": 1},
				},
			},
		}, {
			URL: "/api/v0/console/widget/sankey",
			JSONOutput: gin.H{
				"title": "Distributions and Derivatives",
				"nodes": []gin.H{
					{"name": "Ubuntu"},
					{"name": "GhostBSD"},
					{"name": "Debian"},
					{"name": "FreeBSD"},
				},
				"links": []gin.H{
					{"source": "Debian", "target": "Ubuntu", "value": 10000},
					{"source": "FreeBSD", "target": "GhostBSD", "value": 300},
				},
			},
		}, {
			URL:        "/api/v0/console/widget/map",
			StatusCode: 404,
			JSONOutput: gin.H{"message": "No geometry configured."},
		}, {
			URL:        "/api/v0/console/widget/map/geometry",
			StatusCode: 404,
			JSONOutput: gin.H{"message": "No geometry configured."},
		},
	}
	// Second round is served from cache.
	helpers.TestHTTPEndpoints(t, h.LocalAddr(), cases)
	helpers.TestHTTPEndpoints(t, h.LocalAddr(), cases)

	gotMetrics := r.GetMetrics("dwexplorer_console_")
	expectedMetrics := map[string]string{
		`dataset_rows`:                              "3",
		`normalization_warnings_total{kind="rank"}`: "1",
		`view_builds_total{view="architectures"}`:   "1",
		`view_builds_total{view="counts"}`:          "1",
		`view_builds_total{view="degrees"}`:         "1",
		`view_builds_total{view="desktops"}`:        "1",
		`view_builds_total{view="geo"}`:             "1",
		`view_builds_total{view="sankey"}`:          "1",
	}
	if diff := helpers.Diff(gotMetrics, expectedMetrics); diff != "" {
		t.Fatalf("Metrics (-got, +want):\n%s", diff)
	}
	gotMetrics = r.GetMetrics("dwexplorer_common_httpserver_", "cache_hit")
	if got := gotMetrics[`cache_hit_total{method="GET",path="/api/v0/console/widget/counts"}`]; got != "1" {
		t.Fatalf("Cache hits for counts == %q, expected 1", got)
	}
}

func TestWidgetMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.geo.json")
	if err := os.WriteFile(path, []byte(`{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "GBR", "properties": {"name": "United Kingdom"},
     "geometry": {"type": "Point", "coordinates": [-2, 54]}},
    {"type": "Feature", "id": "CAN", "properties": {"name": "Canada"},
     "geometry": {"type": "Point", "coordinates": [-100, 60]}},
    {"type": "Feature", "id": "FRA", "properties": {"name": "France"},
     "geometry": {"type": "Point", "coordinates": [2, 46]}}
  ]
}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error:\n%+v", err)
	}
	geometry, err := views.LoadGeometry(path)
	if err != nil {
		t.Fatalf("LoadGeometry() error:\n%+v", err)
	}

	config := DefaultConfiguration()
	config.Geometry = path
	_, h, _, _ := NewMock(t, config, sampleRows())
	helpers.TestHTTPEndpoints(t, h.LocalAddr(), helpers.HTTPEndpointCases{
		{
			URL: "/api/v0/console/widget/map",
			JSONOutput: gin.H{
				"map": "Countries",
				"data": []gin.H{
					{"name": "United Kingdom", "value": 1},
					{"name": "Canada", "value": 1},
					{"name": "France", "value": 0},
				},
			},
		}, {
			URL:        "/api/v0/console/widget/map/geometry",
			JSONOutput: geometry,
		},
	})
}
