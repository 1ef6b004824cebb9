// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package views

import "dwexplorer/catalog"

// DegreeTitle is the title of the degree histogram.
const DegreeTitle = "Distribution Importance for Derivatives"

// Degrees computes the degree of each node of the undirected graph
// linking distributions to their parents. Parallel edges are counted
// once, as is a self-loop. Empty names are not nodes.
func Degrees(ds *catalog.Dataset) map[string]int {
	type edge struct{ a, b string }
	degrees := map[string]int{}
	edges := map[edge]bool{}
	node := func(name string) {
		if _, ok := degrees[name]; !ok && name != "" {
			degrees[name] = 0
		}
	}
	for _, r := range ds.Records() {
		node(r.Name)
		node(r.BasedOn)
		if r.Name == "" || r.BasedOn == "" {
			continue
		}
		e := edge{r.Name, r.BasedOn}
		if e.a > e.b {
			e.a, e.b = e.b, e.a
		}
		if edges[e] {
			continue
		}
		edges[e] = true
		degrees[e.a]++
		if e.a != e.b {
			degrees[e.b]++
		}
	}
	return degrees
}

// BuildDegrees ranks distributions by their number of direct
// neighbours. Independent is not ranked.
func BuildDegrees(ds *catalog.Dataset, topN int) Histogram {
	degrees := Degrees(ds)
	delete(degrees, catalog.Independent)
	return Histogram{
		Title: DegreeTitle,
		Bars:  topBars(degrees, topN),
	}
}
