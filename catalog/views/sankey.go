// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package views

import "dwexplorer/catalog"

// SankeyTitle is the title of the flow diagram.
const SankeyTitle = "Distributions and Derivatives"

// SankeyNode is a node of the flow diagram.
type SankeyNode struct {
	Name string `json:"name" yaml:"name"`
}

// SankeyLink goes from a parent to a derivative.
type SankeyLink struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Value  int    `json:"value" yaml:"value"`
}

// Sankey is a flow diagram from parents to derivatives weighted by daily
// hits.
type Sankey struct {
	Title string       `json:"title" yaml:"title"`
	Nodes []SankeyNode `json:"nodes" yaml:"nodes"`
	Links []SankeyLink `json:"links" yaml:"links"`
}

// BuildSankey builds the flow diagram of derivative distributions. Rows
// whose parent is Independent or missing are excluded. Nodes are the
// distinct names, then the distinct parents not already seen. There is
// one link per row.
func BuildSankey(ds *catalog.Dataset) Sankey {
	rows := ds.Filter(catalog.HasParent, catalog.Not(catalog.IsIndependent))
	sankey := Sankey{
		Title: SankeyTitle,
		Nodes: []SankeyNode{},
		Links: make([]SankeyLink, 0, len(rows)),
	}
	seen := map[string]bool{}
	addNode := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		sankey.Nodes = append(sankey.Nodes, SankeyNode{Name: name})
	}
	for _, r := range rows {
		addNode(r.Name)
	}
	for _, r := range rows {
		addNode(r.BasedOn)
		sankey.Links = append(sankey.Links, SankeyLink{
			Source: r.BasedOn,
			Target: r.Name,
			Value:  r.HitsPerDay,
		})
	}
	return sankey
}
