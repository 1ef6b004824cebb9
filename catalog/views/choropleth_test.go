// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package views_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"dwexplorer/catalog/views"
	"dwexplorer/common/helpers"
)

const boundaries = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "GBR", "properties": {"name": "United Kingdom"},
     "geometry": {"type": "Point", "coordinates": [-2, 54]}},
    {"type": "Feature", "id": "DEU", "properties": {"name": "Germany"},
     "geometry": {"type": "Point", "coordinates": [10, 51]}},
    {"type": "Feature", "id": "IRL", "properties": {},
     "geometry": {"type": "Point", "coordinates": [-8, 53]}}
  ]
}`

func TestLoadGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.geo.json")
	if err := os.WriteFile(path, []byte(boundaries), 0o644); err != nil {
		t.Fatalf("WriteFile() error:\n%+v", err)
	}
	fc, err := views.LoadGeometry(path)
	if err != nil {
		t.Fatalf("LoadGeometry() error:\n%+v", err)
	}
	got := views.BuildChoropleth(fc, []views.GeoGroup{
		{Code: "GBR", Label: "UK", Count: 2, Names: "Ubuntu, Tails"},
		{Code: "GBR", Label: "United Kingdom", Count: 1, Names: "Kali"},
		{Code: "IRL", Label: "Ireland", Count: 1, Names: "Mint"},
		{Code: "FRA", Label: "France", Count: 1, Names: "Emmabuntüs"},
	})
	expected := views.Choropleth{
		Map: "Countries",
		Data: []views.MapEntry{
			{Name: "United Kingdom", Value: 3},
			{Name: "Germany", Value: 0},
			{Name: "IRL", Value: 1},
		},
	}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("BuildChoropleth() (-got, +want):\n%s", diff)
	}
}

func TestLoadGeometryErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := views.LoadGeometry(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadGeometry() on a missing file did not error")
	}
	path := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error:\n%+v", err)
	}
	if _, err := views.LoadGeometry(path); err == nil {
		t.Error("LoadGeometry() on an invalid file did not error")
	}
}

func TestViewsChoropleth(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{-2, 54})
	f.ID = "GBR"
	f.Properties["name"] = "United Kingdom"
	fc.Append(f)

	builds := map[string]int{}
	v := views.New(scenario(), views.Options{
		Resolver: testResolver,
		Geometry: fc,
		OnBuild:  func(view string) { builds[view]++ },
	})
	if geometry, ok := v.Geometry(); !ok || geometry != fc {
		t.Fatal("Geometry() did not return the boundaries")
	}
	got, ok := v.Choropleth()
	if !ok {
		t.Fatal("Choropleth() not available")
	}
	expected := views.Choropleth{
		Map:  "Countries",
		Data: []views.MapEntry{{Name: "United Kingdom", Value: 1}},
	}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("Choropleth() (-got, +want):\n%s", diff)
	}
	if report := v.Report(); report.Map == nil {
		t.Fatal("Report() has no map")
	}
	if diff := helpers.Diff(builds["map"], 1); diff != "" {
		t.Fatalf("OnBuild(map) (-got, +want):\n%s", diff)
	}
}
