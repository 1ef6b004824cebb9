// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package countries resolves free-text country names to ISO 3166 codes
// without any network access. The index is built from the CLDR data
// shipped with golang.org/x/text.
package countries

import (
	"slices"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Country is a resolved country.
type Country struct {
	Alpha2 string `json:"alpha2"`
	Alpha3 string `json:"alpha3"`
	Name   string `json:"name"`
}

type entry struct {
	country Country
	tokens  []string
}

// Resolver matches names against the country index. It is safe for
// concurrent use.
type Resolver struct {
	entries []entry
	exact   map[string]int
}

// aliases maps folded colloquial or former names to an alpha-2 code.
var aliases = map[string]string{
	"usa":                   "US",
	"america":               "US",
	"united states america": "US",
	"uk":                    "GB",
	"great britain":         "GB",
	"britain":               "GB",
	"england":               "GB",
	"scotland":              "GB",
	"wales":                 "GB",
	"czech republic":        "CZ",
	"holland":               "NL",
	"russian federation":    "RU",
	"ivory coast":           "CI",
	"burma":                 "MM",
	"korea":                 "KR",
	"republic korea":        "KR",
	"turkey":                "TR",
	"swaziland":             "SZ",
	"macedonia":             "MK",
	"vatican":               "VA",
	"uae":                   "AE",
}

// New builds a resolver from the regions known to x/text.
func New() *Resolver {
	r := &Resolver{exact: map[string]int{}}
	namer := display.English.Regions()
	seen := map[string]bool{}
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			code := string([]rune{a, b})
			region, err := language.ParseRegion(code)
			if err != nil || !region.IsCountry() || region.String() != code {
				continue
			}
			// Withdrawn codes (DD, VD, YD, ZR...) share their English
			// name with the current country.
			if region.Canonicalize() != region {
				continue
			}
			if seen[region.ISO3()] {
				continue
			}
			seen[region.ISO3()] = true
			name := namer.Name(region)
			if name == "" {
				continue
			}
			country := Country{
				Alpha2: region.String(),
				Alpha3: region.ISO3(),
				Name:   name,
			}
			tokens := Tokens(name)
			r.entries = append(r.entries, entry{country: country, tokens: tokens})
			idx := len(r.entries) - 1
			for _, key := range []string{
				strings.Join(tokens, " "),
				strings.ToLower(country.Alpha2),
				strings.ToLower(country.Alpha3),
			} {
				if _, ok := r.exact[key]; !ok {
					r.exact[key] = idx
				}
			}
		}
	}
	byAlpha2 := make(map[string]int, len(r.entries))
	for idx, e := range r.entries {
		byAlpha2[e.country.Alpha2] = idx
	}
	for alias, alpha2 := range aliases {
		if idx, ok := byAlpha2[alpha2]; ok {
			r.exact[alias] = idx
		}
	}
	return r
}

// Countries returns all known countries sorted by alpha-3 code.
func (r *Resolver) Countries() []Country {
	result := make([]Country, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.country)
	}
	slices.SortFunc(result, func(a, b Country) int {
		return strings.Compare(a.Alpha3, b.Alpha3)
	})
	return result
}

// Lookup resolves a name. Exact names, codes and aliases are tried
// first. Otherwise, the country whose name tokens contain the query
// tokens (or the reverse) with the fewest extra tokens wins, ties
// broken on the alpha-3 code.
func (r *Resolver) Lookup(name string) (Country, bool) {
	tokens := Tokens(name)
	if len(tokens) == 0 {
		return Country{}, false
	}
	if idx, ok := r.exact[strings.Join(tokens, " ")]; ok {
		return r.entries[idx].country, true
	}
	best := -1
	bestExtra := 0
	for idx, e := range r.entries {
		if !subset(tokens, e.tokens) && !subset(e.tokens, tokens) {
			continue
		}
		extra := len(e.tokens) - len(tokens)
		if extra < 0 {
			extra = -extra
		}
		if best == -1 || extra < bestExtra ||
			(extra == bestExtra && e.country.Alpha3 < r.entries[best].country.Alpha3) {
			best, bestExtra = idx, extra
		}
	}
	if best == -1 {
		return Country{}, false
	}
	return r.entries[best].country, true
}

// Alpha3 resolves a name to its alpha-3 code.
func (r *Resolver) Alpha3(name string) (string, bool) {
	country, ok := r.Lookup(name)
	return country.Alpha3, ok
}

func subset(small, large []string) bool {
	for _, token := range small {
		if !slices.Contains(large, token) {
			return false
		}
	}
	return true
}

var stopWords = []string{"and", "the", "of"}

// Tokens folds a name into comparable tokens: diacritics and case are
// removed, punctuation separates tokens and stop words are dropped.
func Tokens(name string) []string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = cases.Fold().String(folded)
	folded = strings.ReplaceAll(folded, "&", " and ")
	fields := strings.FieldsFunc(folded, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if slices.Contains(stopWords, field) {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

var defaultResolver = sync.OnceValue(New)

// Lookup resolves a name with the shared resolver.
func Lookup(name string) (Country, bool) {
	return defaultResolver().Lookup(name)
}

// Alpha3 resolves a name to its alpha-3 code with the shared resolver.
func Alpha3(name string) (string, bool) {
	return defaultResolver().Alpha3(name)
}

// Default returns the shared resolver.
func Default() *Resolver {
	return defaultResolver()
}
