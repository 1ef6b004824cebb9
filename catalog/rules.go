// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Row is a record being normalized. Popularity holds the raw text until
// ParsePopularity fills Rank and Hits.
type Row struct {
	Name         string
	OSType       string
	BasedOn      string
	Architecture string
	Desktop      string
	Popularity   string
	Origin       string
	Rank         int
	Hits         int
}

// Row converts a raw record to a row. Absent fields become empty.
func (r RawRecord) Row() Row {
	text := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return Row{
		Name:         text(r.Name),
		OSType:       text(r.OSType),
		BasedOn:      text(r.BasedOn),
		Architecture: text(r.Architecture),
		Desktop:      text(r.Desktop),
		Popularity:   text(r.Popularity),
		Origin:       text(r.Origin),
	}
}

// Record converts a normalized row to a record.
func (r Row) Record() Record {
	return Record{
		Name:         r.Name,
		OSType:       r.OSType,
		BasedOn:      r.BasedOn,
		Architecture: r.Architecture,
		Desktop:      r.Desktop,
		Popularity:   r.Rank,
		HitsPerDay:   r.Hits,
		Origin:       r.Origin,
	}
}

func (r *Row) textFields() []*string {
	return []*string{&r.Name, &r.OSType, &r.BasedOn, &r.Architecture, &r.Desktop, &r.Popularity, &r.Origin}
}

// Rule is a named normalization step. Apply returns new rows and does
// not modify its input.
type Rule struct {
	Name  string
	Apply func(rows []Row, warn WarningFunc) []Row
}

// DefaultRules returns the normalization rules in the order they have
// to be applied. Duplicates are removed a second time at the end as
// aliasing can make two rows identical.
func DefaultRules() []Rule {
	return []Rule{
		{"resolve-parent-patterns", ResolveParentPatterns},
		{"expand-parents", ExpandParents},
		{"remove-duplicates", RemoveDuplicates},
		{"apply-aliases", ApplyAliases},
		{"parse-popularity", ParsePopularity},
		{"alias-origins", AliasOrigins},
		{"remove-final-duplicates", RemoveDuplicates},
	}
}

// ParentPattern extracts a canonical parent from an annotated one.
type ParentPattern struct {
	Description string
	Pattern     *regexp.Regexp
}

// ParentPatterns are applied in order to the parent field. The "name"
// group replaces the whole match.
var ParentPatterns = []ParentPattern{
	{
		Description: "Independent (forked from X) → X",
		Pattern:     regexp.MustCompile(`Independent \(forked from (?P<name>[a-zA-Z0-9 ]+)\)`),
	}, {
		Description: "X (formerly based on Y) → X",
		Pattern:     regexp.MustCompile(`(?P<name>[a-zA-Z0-9 ]+) \(formerly based on [a-zA-Z0-9 ]+\)`),
	},
}

// ResolveParentPatterns rewrites annotated parents to their canonical
// name. Unmatched text is kept as is.
func ResolveParentPatterns(rows []Row, _ WarningFunc) []Row {
	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		for _, pp := range ParentPatterns {
			r.BasedOn = pp.Pattern.ReplaceAllString(r.BasedOn, "${name}")
		}
		result = append(result, r)
	}
	return result
}

// ExpandParents splits the comma-separated parent field and emits one
// row per parent, other fields unchanged. A row without parent is kept
// once with an empty parent.
func ExpandParents(rows []Row, warn WarningFunc) []Row {
	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.BasedOn == "" {
			result = append(result, r)
			continue
		}
		for _, parent := range strings.Split(r.BasedOn, ",") {
			expanded := r
			expanded.BasedOn = strings.TrimSpace(parent)
			if expanded.BasedOn == "" {
				warn(Warning{Kind: WarningParent, Name: r.Name, Value: r.BasedOn})
			}
			result = append(result, expanded)
		}
	}
	return result
}

// RemoveDuplicates keeps the first occurrence of identical rows.
func RemoveDuplicates(rows []Row, _ WarningFunc) []Row {
	seen := make(map[Row]struct{}, len(rows))
	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		result = append(result, r)
	}
	return result
}

// Alias maps a verbose name to its canonical short name.
type Alias struct {
	From string
	To   string
}

// Aliases are applied in order to every text field, both on exact
// values and on substrings.
var Aliases = []Alias{
	{"Alpine Linux", "Alpine"},
	{"Arch Linux", "Arch"},
	{"Damn Small Linux", "Damn Small"},
	{"Debian (Stable)", "Debian"},
	{"Debian (Testing)", "Debian"},
	{"Debian (Unstable)", "Debian"},
	{"Devuan GNU+Linux", "Devuan"},
	{"Gentoo Linux", "Gentoo"},
	{"Kali Linux", "Kali"},
	{"Lubuntu (LTS)", "Lubuntu"},
	{"Manjaro Linux", "Manjaro"},
	{"Red Hat Enterprise Linux", "Red Hat"},
	{"Slackware Linux", "Slackware"},
	{"Ubuntu (LTS)", "Ubuntu"},
	{"Ubuntu (Stable)", "Ubuntu"},
}

// CanonicalName applies Aliases to a value until it does not change.
// Each alias shortens the value, so this terminates.
func CanonicalName(s string) string {
	for {
		previous := s
		for _, alias := range Aliases {
			s = strings.ReplaceAll(s, alias.From, alias.To)
		}
		if s == previous {
			return s
		}
	}
}

// ApplyAliases canonicalizes every text field.
func ApplyAliases(rows []Row, _ WarningFunc) []Row {
	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		for _, field := range r.textFields() {
			*field = CanonicalName(*field)
		}
		result = append(result, r)
	}
	return result
}

// NotRanked is the popularity of distributions without rank.
const NotRanked = "Not ranked"

// ParsePopularity splits the popularity text on the first space into a
// rank and a number of daily hits. Non-digits are stripped from hits.
// Unparseable values become 0. Rows without popularity text keep their
// current rank and hits, which are 0 for raw rows.
func ParsePopularity(rows []Row, warn WarningFunc) []Row {
	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		text := r.Popularity
		if text == "" {
			result = append(result, r)
			continue
		}
		r.Popularity, r.Rank, r.Hits = "", 0, 0
		if text == NotRanked {
			result = append(result, r)
			continue
		}
		rankText, hitsText, _ := strings.Cut(text, " ")
		if rank, err := strconv.Atoi(rankText); err == nil && rank >= 0 {
			r.Rank = rank
		} else {
			warn(Warning{Kind: WarningRank, Name: r.Name, Value: text})
		}
		if hitsText != "" {
			digits := strings.Map(func(c rune) rune {
				if c > unicode.MaxASCII || !unicode.IsDigit(c) {
					return -1
				}
				return c
			}, hitsText)
			if hits, err := strconv.Atoi(digits); err == nil {
				r.Hits = hits
			} else {
				warn(Warning{Kind: WarningHits, Name: r.Name, Value: text})
			}
		}
		result = append(result, r)
	}
	return result
}

// OriginAliases are substituted in the origin field so that
// distributions are aggregated consistently.
var OriginAliases = []Alias{
	{"Taiwan", "China"},
}

// AliasOrigins applies OriginAliases.
func AliasOrigins(rows []Row, _ WarningFunc) []Row {
	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		for _, alias := range OriginAliases {
			r.Origin = strings.ReplaceAll(r.Origin, alias.From, alias.To)
		}
		result = append(result, r)
	}
	return result
}
