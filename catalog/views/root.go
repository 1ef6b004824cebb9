// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package views derives summaries from the canonical catalog. Builders
// are pure functions of a dataset. Views memoizes them for the lifetime
// of a dataset.
package views

import (
	"sync"

	"github.com/paulmach/orb/geojson"

	"dwexplorer/catalog"
	"dwexplorer/catalog/countries"
)

// Options tunes the views.
type Options struct {
	// TopN is the number of bars kept in histograms.
	TopN int
	// Resolver resolves origins to country codes. The offline
	// resolver is used when nil.
	Resolver CountryResolver
	// Geometry holds country boundaries. The choropleth is not
	// available without them.
	Geometry *geojson.FeatureCollection
	// OnBuild is called each time a view is computed.
	OnBuild func(view string)
}

// Views computes each view at most once.
type Views struct {
	dataset *catalog.Dataset
	options Options

	counts        func() Counts
	geo           func() []GeoGroup
	architectures func() Histogram
	desktops      func() Histogram
	degrees       func() Histogram
	sankey        func() Sankey
	choropleth    func() Choropleth
}

// New creates memoized views over a dataset.
func New(ds *catalog.Dataset, options Options) *Views {
	if options.TopN <= 0 {
		options.TopN = DefaultTopN
	}
	if options.Resolver == nil {
		options.Resolver = countries.Default()
	}
	v := &Views{dataset: ds, options: options}
	v.counts = memoize(v, "counts", func() Counts {
		return BuildCounts(ds)
	})
	v.geo = memoize(v, "geo", func() []GeoGroup {
		return BuildGeo(ds, options.Resolver)
	})
	v.architectures = memoize(v, "architectures", func() Histogram {
		return BuildHistogram(ds, Architectures, options.TopN)
	})
	v.desktops = memoize(v, "desktops", func() Histogram {
		return BuildHistogram(ds, Desktops, options.TopN)
	})
	v.degrees = memoize(v, "degrees", func() Histogram {
		return BuildDegrees(ds, options.TopN)
	})
	v.sankey = memoize(v, "sankey", func() Sankey {
		return BuildSankey(ds)
	})
	v.choropleth = memoize(v, "map", func() Choropleth {
		return BuildChoropleth(options.Geometry, v.geo())
	})
	return v
}

func memoize[T any](v *Views, name string, build func() T) func() T {
	var once sync.Once
	var result T
	return func() T {
		once.Do(func() {
			result = build()
			if v.options.OnBuild != nil {
				v.options.OnBuild(name)
			}
		})
		return result
	}
}

// Dataset returns the underlying dataset.
func (v *Views) Dataset() *catalog.Dataset {
	return v.dataset
}

// TopN returns the number of bars kept in histograms.
func (v *Views) TopN() int {
	return v.options.TopN
}

// Counts returns the row counts.
func (v *Views) Counts() Counts {
	return v.counts()
}

// Geo returns the geographic groups.
func (v *Views) Geo() []GeoGroup {
	return v.geo()
}

// Architectures returns the architecture histogram.
func (v *Views) Architectures() Histogram {
	return v.architectures()
}

// Desktops returns the desktop histogram.
func (v *Views) Desktops() Histogram {
	return v.desktops()
}

// Degrees returns the degree ranking.
func (v *Views) Degrees() Histogram {
	return v.degrees()
}

// Sankey returns the flow diagram.
func (v *Views) Sankey() Sankey {
	return v.sankey()
}

// Geometry returns the country boundaries, if any.
func (v *Views) Geometry() (*geojson.FeatureCollection, bool) {
	return v.options.Geometry, v.options.Geometry != nil
}

// Choropleth returns the map series. It is only available when
// boundaries were provided.
func (v *Views) Choropleth() (Choropleth, bool) {
	if v.options.Geometry == nil {
		return Choropleth{}, false
	}
	return v.choropleth(), true
}

// Report gathers all views.
type Report struct {
	Counts        Counts      `json:"counts" yaml:"counts"`
	Geo           []GeoGroup  `json:"geo" yaml:"geo"`
	Architectures Histogram   `json:"architectures" yaml:"architectures"`
	Desktops      Histogram   `json:"desktops" yaml:"desktops"`
	Degrees       Histogram   `json:"degrees" yaml:"degrees"`
	Sankey        Sankey      `json:"sankey" yaml:"sankey"`
	Map           *Choropleth `json:"map,omitempty" yaml:"map,omitempty"`
}

// Report computes every view.
func (v *Views) Report() Report {
	report := Report{
		Counts:        v.Counts(),
		Geo:           v.Geo(),
		Architectures: v.Architectures(),
		Desktops:      v.Desktops(),
		Degrees:       v.Degrees(),
		Sankey:        v.Sankey(),
	}
	if choropleth, ok := v.Choropleth(); ok {
		report.Map = &choropleth
	}
	return report
}
