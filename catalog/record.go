// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package catalog turns the raw rows of the distribution catalog into
// a canonical, immutable dataset.
//
// Normalization is an ordered list of rules (see DefaultRules). Later
// rules assume the output shape of earlier ones: the parent field is
// resolved before being split, rows are deduplicated before aliasing,
// and popularity is parsed last. Missing values are represented by the
// empty string.
package catalog

import (
	"fmt"
)

// Independent is the parent of distributions with no known ancestor.
const Independent = "Independent"

// RawRecord is a row of the distros table as stored. Any field may be
// absent.
type RawRecord struct {
	Name         *string `json:"Name" yaml:"Name"`
	OSType       *string `json:"OS Type" yaml:"OS Type"`
	BasedOn      *string `json:"Based on" yaml:"Based on"`
	Architecture *string `json:"Architecture" yaml:"Architecture"`
	Desktop      *string `json:"Desktop" yaml:"Desktop"`
	Popularity   *string `json:"Popularity" yaml:"Popularity"`
	Origin       *string `json:"Origin" yaml:"Origin"`
}

// Record is a canonical row. BasedOn is a single parent. Architecture
// and Desktop are still comma-separated lists; views tokenize them.
type Record struct {
	Name         string `json:"name"`
	OSType       string `json:"os-type"`
	BasedOn      string `json:"based-on"`
	Architecture string `json:"architecture"`
	Desktop      string `json:"desktop"`
	Popularity   int    `json:"popularity"`
	HitsPerDay   int    `json:"hits-per-day"`
	Origin       string `json:"origin"`
}

// Raw renders a canonical record back into a raw one. Normalizing the
// result yields the record again.
func (r Record) Raw() RawRecord {
	text := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	var popularity *string
	if r.Popularity != 0 || r.HitsPerDay != 0 {
		popularity = text(fmt.Sprintf("%d %d", r.Popularity, r.HitsPerDay))
	}
	return RawRecord{
		Name:         text(r.Name),
		OSType:       text(r.OSType),
		BasedOn:      text(r.BasedOn),
		Architecture: text(r.Architecture),
		Desktop:      text(r.Desktop),
		Popularity:   popularity,
		Origin:       text(r.Origin),
	}
}

// IsIndependent tells if the record has no known parent.
func IsIndependent(r Record) bool {
	return r.BasedOn == Independent
}

// HasParent tells if the record has a parent, Independent included.
func HasParent(r Record) bool {
	return r.BasedOn != ""
}

// OSTypeIs returns a predicate matching records of the provided OS type.
func OSTypeIs(osType string) func(Record) bool {
	return func(r Record) bool {
		return r.OSType == osType
	}
}

// Not negates a predicate.
func Not(pred func(Record) bool) func(Record) bool {
	return func(r Record) bool {
		return !pred(r)
	}
}
