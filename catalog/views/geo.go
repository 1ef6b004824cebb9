// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"cmp"
	"slices"
	"strings"

	"dwexplorer/catalog"
)

// CountryResolver resolves a country name to its ISO 3166 alpha-3 code.
type CountryResolver interface {
	Alpha3(name string) (string, bool)
}

// GeoGroup is the set of distributions sharing a country code and an
// origin label.
type GeoGroup struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
	Names string `json:"names" yaml:"names"`
}

// unlocatedOrigins are origins that are not a country.
var unlocatedOrigins = []string{"", "Global", "Europe"}

// OriginLabel returns the last comma-separated segment of an origin.
func OriginLabel(origin string) string {
	if idx := strings.LastIndex(origin, ","); idx >= 0 {
		origin = origin[idx+1:]
	}
	return strings.TrimSpace(origin)
}

// BuildGeo groups derivative distributions by country. Independent
// distributions are excluded. Each distribution is counted once, at the
// position of its first row. Origins that cannot be resolved are
// skipped. Groups are sorted by code, then label.
func BuildGeo(ds *catalog.Dataset, resolver CountryResolver) []GeoGroup {
	type key struct{ code, label string }
	seen := map[string]bool{}
	groups := map[key]*GeoGroup{}
	names := map[key][]string{}
	for _, r := range ds.Filter(catalog.Not(catalog.IsIndependent)) {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		label := OriginLabel(r.Origin)
		if slices.Contains(unlocatedOrigins, label) {
			continue
		}
		code, ok := resolver.Alpha3(label)
		if !ok {
			continue
		}
		k := key{code, label}
		if groups[k] == nil {
			groups[k] = &GeoGroup{Code: code, Label: label}
		}
		groups[k].Count++
		names[k] = append(names[k], r.Name)
	}

	result := make([]GeoGroup, 0, len(groups))
	for k, g := range groups {
		g.Names = strings.Join(names[k], ", ")
		result = append(result, *g)
	}
	slices.SortFunc(result, func(a, b GeoGroup) int {
		return cmp.Or(cmp.Compare(a.Code, b.Code), cmp.Compare(a.Label, b.Label))
	})
	return result
}
