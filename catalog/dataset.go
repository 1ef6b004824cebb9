// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import "slices"

// Dataset is the canonical table. It is immutable: accessors return
// copies.
type Dataset struct {
	records []Record
}

// NewDataset creates a dataset from a copy of the provided records.
func NewDataset(records []Record) *Dataset {
	return &Dataset{records: slices.Clone(records)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all rows, in order.
func (d *Dataset) Records() []Record {
	return slices.Clone(d.records)
}

// Filter returns a copy of the rows matching all predicates, in order.
func (d *Dataset) Filter(preds ...func(Record) bool) []Record {
	result := []Record{}
outer:
	for _, r := range d.records {
		for _, pred := range preds {
			if !pred(r) {
				continue outer
			}
		}
		result = append(result, r)
	}
	return result
}

// Count returns the number of rows matching all predicates.
func (d *Dataset) Count(preds ...func(Record) bool) int {
	return len(d.Filter(preds...))
}
