// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package views_test

import (
	"fmt"
	"testing"

	"dwexplorer/catalog"
	"dwexplorer/catalog/views"
	"dwexplorer/common/helpers"
)

type mapResolver map[string]string

func (m mapResolver) Alpha3(name string) (string, bool) {
	code, ok := m[name]
	return code, ok
}

var testResolver = mapResolver{
	"Germany":        "DEU",
	"United Kingdom": "GBR",
	"UK":             "GBR",
	"France":         "FRA",
	"Ireland":        "IRL",
	"USA":            "USA",
}

func ptr(s string) *string {
	return &s
}

// scenario is the two-row catalog used throughout the tests.
func scenario() *catalog.Dataset {
	return catalog.Normalize([]catalog.RawRecord{
		{
			Name:         ptr("Ubuntu (LTS)"),
			OSType:       ptr("Linux"),
			BasedOn:      ptr("Debian (Testing)"),
			Architecture: ptr("x86_64"),
			Desktop:      ptr("GNOME"),
			Popularity:   ptr("5 10000"),
			Origin:       ptr("United Kingdom"),
		}, {
			Name:         ptr("Debian (Testing)"),
			OSType:       ptr("Linux"),
			BasedOn:      ptr("Independent"),
			Architecture: ptr("x86_64,aarch64"),
			Desktop:      ptr("GNOME,KDE Plasma"),
			Popularity:   ptr("Not ranked"),
			Origin:       ptr("Germany"),
		},
	})
}

func TestScenario(t *testing.T) {
	ds := scenario()

	expectedRecords := []catalog.Record{
		{
			Name: "Ubuntu", OSType: "Linux", BasedOn: "Debian",
			Architecture: "x86_64", Desktop: "GNOME",
			Popularity: 5, HitsPerDay: 10000, Origin: "United Kingdom",
		}, {
			Name: "Debian", OSType: "Linux", BasedOn: "Independent",
			Architecture: "x86_64,aarch64", Desktop: "GNOME,KDE Plasma",
			Origin: "Germany",
		},
	}
	if diff := helpers.Diff(ds.Records(), expectedRecords); diff != "" {
		t.Fatalf("Normalize() (-got, +want):\n%s", diff)
	}

	v := views.New(ds, views.Options{Resolver: testResolver})
	got := v.Report()
	expected := views.Report{
		Counts: views.Counts{Total: 2, Linux: 2},
		Geo: []views.GeoGroup{
			{Code: "GBR", Label: "United Kingdom", Count: 1, Names: "Ubuntu"},
		},
		Architectures: views.Histogram{
			Title: "Top 20 Supported Architectures",
			Bars:  []views.Bar{{Label: "x86_64", Value: 2}, {Label: "arm64", Value: 1}},
		},
		Desktops: views.Histogram{
			Title: "Top 20 Supported Desktops",
			Bars:  []views.Bar{{Label: "GNOME", Value: 2}, {Label: "KDE", Value: 1}},
		},
		Degrees: views.Histogram{
			Title: "Distribution Importance for Derivatives",
			Bars:  []views.Bar{{Label: "Debian", Value: 2}, {Label: "Ubuntu", Value: 1}},
		},
		Sankey: views.Sankey{
			Title: "Distributions and Derivatives",
			Nodes: []views.SankeyNode{{Name: "Ubuntu"}, {Name: "Debian"}},
			Links: []views.SankeyLink{{Source: "Debian", Target: "Ubuntu", Value: 10000}},
		},
	}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("Report() (-got, +want):\n%s", diff)
	}
}

func TestCounts(t *testing.T) {
	ds := catalog.NewDataset([]catalog.Record{
		{Name: "Mint", OSType: "Linux", BasedOn: "Debian"},
		{Name: "Mint", OSType: "Linux", BasedOn: "Ubuntu"},
		{Name: "FreeBSD", OSType: "BSD", BasedOn: "Independent"},
		{Name: "Haiku", OSType: "Haiku", BasedOn: "Independent"},
		{Name: "Mystery"},
	})
	got := views.BuildCounts(ds)
	expected := views.Counts{Total: 5, Linux: 2, BSD: 1, Other: 2}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("BuildCounts() (-got, +want):\n%s", diff)
	}
	if got.Total != got.Linux+got.BSD+got.Other {
		t.Fatalf("BuildCounts() == %+v, total is not the sum of the parts", got)
	}
}

func TestOriginLabel(t *testing.T) {
	cases := []struct {
		Pos      helpers.Pos
		Input    string
		Expected string
	}{
		{helpers.Mark(), "Germany", "Germany"},
		{helpers.Mark(), "Isle of Man, United Kingdom", "United Kingdom"},
		{helpers.Mark(), "Global, USA", "USA"},
		{helpers.Mark(), " France ", "France"},
		{helpers.Mark(), "France,", ""},
		{helpers.Mark(), "", ""},
	}
	for _, tc := range cases {
		if got := views.OriginLabel(tc.Input); got != tc.Expected {
			t.Errorf("%sOriginLabel(%q) == %q, expected %q", tc.Pos, tc.Input, got, tc.Expected)
		}
	}
}

func TestGeo(t *testing.T) {
	ds := catalog.NewDataset([]catalog.Record{
		{Name: "Mint", BasedOn: "Debian", Origin: "Ireland"},
		{Name: "Mint", BasedOn: "Ubuntu", Origin: "Ireland"},
		{Name: "Ubuntu", BasedOn: "Debian", Origin: "Isle of Man, UK"},
		{Name: "Kali", BasedOn: "Debian", Origin: "United Kingdom"},
		{Name: "Tails", BasedOn: "Debian", Origin: "UK"},
		{Name: "Debian", BasedOn: "Independent", Origin: "Global"},
		{Name: "Slackware", BasedOn: "Independent", Origin: "USA"},
		{Name: "Zorin", BasedOn: "Ubuntu", Origin: "Europe"},
		{Name: "Hidden", BasedOn: "Ubuntu", Origin: "Atlantis"},
		{Name: "Nowhere", BasedOn: "Ubuntu"},
		{Name: "Emmabuntüs", BasedOn: "Debian", Origin: "France"},
	})
	got := views.BuildGeo(ds, testResolver)
	expected := []views.GeoGroup{
		{Code: "FRA", Label: "France", Count: 1, Names: "Emmabuntüs"},
		{Code: "GBR", Label: "UK", Count: 2, Names: "Ubuntu, Tails"},
		{Code: "GBR", Label: "United Kingdom", Count: 1, Names: "Kali"},
		{Code: "IRL", Label: "Ireland", Count: 1, Names: "Mint"},
	}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("BuildGeo() (-got, +want):\n%s", diff)
	}
}

func TestGeoFirstRowWins(t *testing.T) {
	ds := catalog.NewDataset([]catalog.Record{
		{Name: "Mint", BasedOn: "Independent", Origin: "France"},
		{Name: "Mint", BasedOn: "Debian", Origin: "Ireland"},
		{Name: "Mint", BasedOn: "Ubuntu", Origin: "Germany"},
	})
	got := views.BuildGeo(ds, testResolver)
	expected := []views.GeoGroup{
		{Code: "IRL", Label: "Ireland", Count: 1, Names: "Mint"},
	}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("BuildGeo() (-got, +want):\n%s", diff)
	}
}

func TestHistogram(t *testing.T) {
	ds := catalog.NewDataset([]catalog.Record{
		{Name: "A", Architecture: "x86_64, aarch64", Desktop: "KDE Plasma"},
		{Name: "A", Architecture: "x86_64, aarch64", Desktop: "KDE Plasma"},
		{Name: "B", Architecture: "arm64,,i686 ", Desktop: "Xfce, KDE"},
		{Name: "C", Architecture: "i686", Desktop: ""},
		{Name: "D", Architecture: "riscv64,x86_64"},
	})
	cases := []struct {
		Pos      helpers.Pos
		Category views.Category
		TopN     int
		Expected views.Histogram
	}{
		{
			Pos:      helpers.Mark(),
			Category: views.Architectures,
			TopN:     20,
			Expected: views.Histogram{
				Title: "Top 20 Supported Architectures",
				Bars: []views.Bar{
					{Label: "arm64", Value: 3},
					{Label: "x86_64", Value: 3},
					{Label: "i686", Value: 2},
					{Label: "riscv64", Value: 1},
				},
			},
		}, {
			Pos:      helpers.Mark(),
			Category: views.Architectures,
			TopN:     2,
			Expected: views.Histogram{
				Title: "Top 2 Supported Architectures",
				Bars:  []views.Bar{{Label: "arm64", Value: 3}, {Label: "x86_64", Value: 3}},
			},
		}, {
			Pos:      helpers.Mark(),
			Category: views.Desktops,
			TopN:     20,
			Expected: views.Histogram{
				Title: "Top 20 Supported Desktops",
				Bars:  []views.Bar{{Label: "KDE", Value: 3}, {Label: "Xfce", Value: 1}},
			},
		},
	}
	for _, tc := range cases {
		got := views.BuildHistogram(ds, tc.Category, tc.TopN)
		if diff := helpers.Diff(got, tc.Expected); diff != "" {
			t.Errorf("%sBuildHistogram() (-got, +want):\n%s", tc.Pos, diff)
		}
	}
}

func TestHistogramTopN(t *testing.T) {
	records := []catalog.Record{}
	for i := range 30 {
		for range i + 1 {
			records = append(records, catalog.Record{
				Name:         fmt.Sprintf("D%d", i),
				Architecture: fmt.Sprintf("arch%02d", i),
			})
		}
	}
	ds := catalog.NewDataset(records)
	got := views.BuildHistogram(ds, views.Architectures, views.DefaultTopN)
	if len(got.Bars) != views.DefaultTopN {
		t.Fatalf("BuildHistogram() returned %d bars, expected %d", len(got.Bars), views.DefaultTopN)
	}
	for i, bar := range got.Bars {
		// Each bar counts the rows whose tokens contain its label.
		expected := 0
		for _, r := range ds.Records() {
			for _, token := range views.Architectures.Tokens(r) {
				if token == bar.Label {
					expected++
				}
			}
		}
		if bar.Value != expected {
			t.Errorf("BuildHistogram() bar %q == %d, expected %d", bar.Label, bar.Value, expected)
		}
		if i > 0 && got.Bars[i-1].Value < bar.Value {
			t.Errorf("BuildHistogram() not sorted at %d", i)
		}
	}
	if got.Bars[0] != (views.Bar{Label: "arch29", Value: 30}) {
		t.Errorf("BuildHistogram() first bar == %+v", got.Bars[0])
	}
}

func TestDegrees(t *testing.T) {
	ds := catalog.NewDataset([]catalog.Record{
		{Name: "Debian", BasedOn: "Independent"},
		{Name: "Arch", BasedOn: "Independent"},
		{Name: "Slackware", BasedOn: "Independent"},
		{Name: "Gentoo", BasedOn: "Independent"},
		{Name: "Ubuntu", BasedOn: "Debian"},
		{Name: "Ubuntu", BasedOn: "Debian"},
		{Name: "Mint", BasedOn: "Ubuntu"},
		{Name: "Mint", BasedOn: "Debian"},
		{Name: "Loop", BasedOn: "Loop"},
		{Name: "Orphan"},
	})
	got := views.Degrees(ds)
	expected := map[string]int{
		"Independent": 4,
		"Debian":      3,
		"Ubuntu":      2,
		"Mint":        2,
		"Arch":        1,
		"Slackware":   1,
		"Gentoo":      1,
		"Loop":        1,
		"Orphan":      0,
	}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("Degrees() (-got, +want):\n%s", diff)
	}

	ranking := views.BuildDegrees(ds, 4)
	expectedRanking := views.Histogram{
		Title: "Distribution Importance for Derivatives",
		Bars: []views.Bar{
			{Label: "Debian", Value: 3},
			{Label: "Mint", Value: 2},
			{Label: "Ubuntu", Value: 2},
			{Label: "Arch", Value: 1},
		},
	}
	if diff := helpers.Diff(ranking, expectedRanking); diff != "" {
		t.Fatalf("BuildDegrees() (-got, +want):\n%s", diff)
	}
}

func TestSankey(t *testing.T) {
	ds := catalog.NewDataset([]catalog.Record{
		{Name: "Mint", BasedOn: "Debian", HitsPerDay: 100},
		{Name: "Mint", BasedOn: "Ubuntu", HitsPerDay: 100},
		{Name: "Debian", BasedOn: "Independent", HitsPerDay: 50},
		{Name: "Ubuntu", BasedOn: "Debian", HitsPerDay: 80},
		{Name: "Ubuntu", BasedOn: "Debian", HitsPerDay: 80},
		{Name: "Orphan", HitsPerDay: 3},
		{Name: "Peppermint", BasedOn: "Lubuntu"},
	})
	got := views.BuildSankey(ds)
	expected := views.Sankey{
		Title: "Distributions and Derivatives",
		Nodes: []views.SankeyNode{
			{Name: "Mint"}, {Name: "Ubuntu"}, {Name: "Peppermint"},
			{Name: "Debian"}, {Name: "Lubuntu"},
		},
		Links: []views.SankeyLink{
			{Source: "Debian", Target: "Mint", Value: 100},
			{Source: "Ubuntu", Target: "Mint", Value: 100},
			{Source: "Debian", Target: "Ubuntu", Value: 80},
			{Source: "Debian", Target: "Ubuntu", Value: 80},
			{Source: "Lubuntu", Target: "Peppermint", Value: 0},
		},
	}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("BuildSankey() (-got, +want):\n%s", diff)
	}
	for _, link := range got.Links {
		if link.Source == catalog.Independent {
			t.Errorf("BuildSankey() link %+v comes from Independent", link)
		}
	}
}

func TestMemoization(t *testing.T) {
	builds := map[string]int{}
	v := views.New(scenario(), views.Options{
		Resolver: testResolver,
		OnBuild:  func(view string) { builds[view]++ },
	})
	for range 3 {
		v.Counts()
		v.Geo()
		v.Degrees()
	}
	v.Report()
	if _, ok := v.Choropleth(); ok {
		t.Error("Choropleth() available without geometry")
	}
	expected := map[string]int{
		"counts":        1,
		"geo":           1,
		"architectures": 1,
		"desktops":      1,
		"degrees":       1,
		"sankey":        1,
	}
	if diff := helpers.Diff(builds, expected); diff != "" {
		t.Fatalf("OnBuild() (-got, +want):\n%s", diff)
	}
	if v.TopN() != views.DefaultTopN {
		t.Errorf("TopN() == %d, expected %d", v.TopN(), views.DefaultTopN)
	}
}

func TestGeoDefaultResolver(t *testing.T) {
	raw := []catalog.RawRecord{}
	for _, row := range []struct {
		Name, BasedOn, Origin string
	}{
		{"Knoppix", "Debian", "Germany"},
		{"siduction", "Debian (Unstable)", "Germany"},
		{"Debian", "Independent", "Germany"},
		{"Rocky", "Red Hat Enterprise Linux", "USA"},
		{"Emmabuntüs", "Debian", "France"},
		{"Deepin", "Debian", "China"},
		{"Ubuntu Kylin", "Ubuntu", "Taiwan"},
		{"Vietkey", "Ubuntu", "Vietnam"},
		{"Kubuntu", "Ubuntu", "Isle of Man, United Kingdom"},
		{"Zorin", "Ubuntu", "Europe"},
		{"Puppy", "Ubuntu", "Global"},
	} {
		raw = append(raw, catalog.RawRecord{
			Name:    ptr(row.Name),
			BasedOn: ptr(row.BasedOn),
			Origin:  ptr(row.Origin),
		})
	}
	got := views.New(catalog.Normalize(raw), views.Options{}).Geo()
	expected := []views.GeoGroup{
		{Code: "CHN", Label: "China", Count: 2, Names: "Deepin, Ubuntu Kylin"},
		{Code: "DEU", Label: "Germany", Count: 2, Names: "Knoppix, siduction"},
		{Code: "FRA", Label: "France", Count: 1, Names: "Emmabuntüs"},
		{Code: "GBR", Label: "United Kingdom", Count: 1, Names: "Kubuntu"},
		{Code: "USA", Label: "USA", Count: 1, Names: "Rocky"},
		{Code: "VNM", Label: "Vietnam", Count: 1, Names: "Vietkey"},
	}
	if diff := helpers.Diff(got, expected); diff != "" {
		t.Fatalf("Geo() (-got, +want):\n%s", diff)
	}
}

func TestDefaultResolver(t *testing.T) {
	v := views.New(scenario(), views.Options{})
	expected := []views.GeoGroup{
		{Code: "GBR", Label: "United Kingdom", Count: 1, Names: "Ubuntu"},
	}
	if diff := helpers.Diff(v.Geo(), expected); diff != "" {
		t.Fatalf("Geo() (-got, +want):\n%s", diff)
	}
}
