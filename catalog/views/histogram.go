// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"dwexplorer/catalog"
)

// DefaultTopN is the default number of bars kept in histograms.
const DefaultTopN = 20

// Bar is one bar of an histogram.
type Bar struct {
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
}

// Histogram is a titled list of bars, highest first.
type Histogram struct {
	Title string `json:"title" yaml:"title"`
	Bars  []Bar  `json:"bars" yaml:"bars"`
}

// Category describes a multi-valued field to count.
type Category struct {
	// Name of the category, used in the title.
	Name string
	// Field extracts the comma-separated tokens from a record.
	Field func(catalog.Record) string
	// Aliases renames tokens after trimming.
	Aliases map[string]string
}

// Architectures counts supported architectures.
var Architectures = Category{
	Name:    "Architectures",
	Field:   func(r catalog.Record) string { return r.Architecture },
	Aliases: map[string]string{"aarch64": "arm64"},
}

// Desktops counts supported desktops.
var Desktops = Category{
	Name:    "Desktops",
	Field:   func(r catalog.Record) string { return r.Desktop },
	Aliases: map[string]string{"KDE Plasma": "KDE"},
}

// Tokens splits a field into trimmed and aliased tokens. Empty tokens
// are dropped.
func (c Category) Tokens(r catalog.Record) []string {
	var tokens []string
	for _, token := range strings.Split(c.Field(r), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if alias, ok := c.Aliases[token]; ok {
			token = alias
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// BuildHistogram counts token occurrences over all rows and keeps the
// topN most frequent ones. A row contributes once per token occurrence.
func BuildHistogram(ds *catalog.Dataset, c Category, topN int) Histogram {
	counts := map[string]int{}
	for _, r := range ds.Records() {
		for _, token := range c.Tokens(r) {
			counts[token]++
		}
	}
	return Histogram{
		Title: fmt.Sprintf("Top %d Supported %s", topN, c.Name),
		Bars:  topBars(counts, topN),
	}
}

// topBars sorts by value descending, then by label, and keeps topN bars.
func topBars(counts map[string]int, topN int) []Bar {
	bars := make([]Bar, 0, len(counts))
	for label, value := range counts {
		bars = append(bars, Bar{Label: label, Value: value})
	}
	slices.SortFunc(bars, func(a, b Bar) int {
		return cmp.Or(cmp.Compare(b.Value, a.Value), cmp.Compare(a.Label, b.Label))
	})
	if topN >= 0 && len(bars) > topN {
		bars = bars[:topN]
	}
	return bars
}
