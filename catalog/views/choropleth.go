// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// MapName is the name the boundaries are registered under.
const MapName = "Countries"

// MapEntry is the value of one map region.
type MapEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// Choropleth is a map series colouring each country by its number of
// distributions.
type Choropleth struct {
	Map  string     `json:"map" yaml:"map"`
	Data []MapEntry `json:"data" yaml:"data"`
}

// LoadGeometry reads a GeoJSON feature collection of country
// boundaries. Feature IDs are expected to be alpha-3 codes.
func LoadGeometry(path string) (*geojson.FeatureCollection, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read geometry: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(content)
	if err != nil {
		return nil, fmt.Errorf("cannot parse geometry %q: %w", path, err)
	}
	return fc, nil
}

// BuildChoropleth emits one entry per feature. The value is the number
// of distributions whose code matches the feature ID. The entry name is
// the "name" property, or the ID when absent.
func BuildChoropleth(fc *geojson.FeatureCollection, groups []GeoGroup) Choropleth {
	byCode := map[string]int{}
	for _, g := range groups {
		byCode[g.Code] += g.Count
	}
	result := Choropleth{
		Map:  MapName,
		Data: make([]MapEntry, 0, len(fc.Features)),
	}
	for _, f := range fc.Features {
		id := ""
		if f.ID != nil {
			id = fmt.Sprint(f.ID)
		}
		result.Data = append(result.Data, MapEntry{
			Name:  f.Properties.MustString("name", id),
			Value: byCode[id],
		})
	}
	return result
}
