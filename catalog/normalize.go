// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import "slices"

// maxPasses bounds the number of times the rules are applied while
// looking for a fixed point.
const maxPasses = 8

// Normalizer applies an ordered list of rules to raw rows.
type Normalizer struct {
	rules []Rule

	// OnWarning is called for each degraded row. It may be nil.
	OnWarning WarningFunc
}

// NewNormalizer creates a normalizer with the provided rules, or with
// DefaultRules when none are provided.
func NewNormalizer(rules ...Rule) *Normalizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Normalizer{rules: rules}
}

// Rules returns the names of the rules, in order.
func (n *Normalizer) Rules() []string {
	names := make([]string, 0, len(n.rules))
	for _, rule := range n.rules {
		names = append(names, rule.Name)
	}
	return names
}

// Rows applies the rules to already converted rows. The rules are
// applied again until the rows do not change anymore: aliasing may
// reveal a parent pattern, like in "Independent (forked from Debian
// (Testing))".
func (n *Normalizer) Rows(rows []Row) []Row {
	warn := n.OnWarning
	if warn == nil {
		warn = func(Warning) {}
	}
	for range maxPasses {
		next := rows
		for _, rule := range n.rules {
			next = rule.Apply(next, warn)
		}
		if slices.Equal(next, rows) {
			return next
		}
		rows = next
	}
	return rows
}

// Normalize turns raw records into the canonical dataset.
func (n *Normalizer) Normalize(raw []RawRecord) *Dataset {
	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, r.Row())
	}
	rows = n.Rows(rows)
	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return &Dataset{records: records}
}

// Normalize turns raw records into the canonical dataset with the
// default rules, ignoring warnings.
func Normalize(raw []RawRecord) *Dataset {
	return NewNormalizer().Normalize(raw)
}
