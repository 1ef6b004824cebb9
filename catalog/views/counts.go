// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package views

import "dwexplorer/catalog"

// Counts is the number of rows per OS type. Rows are counted after
// parent expansion: a distribution with two parents counts twice.
type Counts struct {
	Total int `json:"total" yaml:"total"`
	Linux int `json:"linux" yaml:"linux"`
	BSD   int `json:"bsd" yaml:"bsd"`
	Other int `json:"other" yaml:"other"`
}

// OS types with a dedicated count.
const (
	Linux = "Linux"
	BSD   = "BSD"
)

// TotalCount returns the number of rows.
func TotalCount(ds *catalog.Dataset) int {
	return ds.Len()
}

// LinuxCount returns the number of Linux rows.
func LinuxCount(ds *catalog.Dataset) int {
	return ds.Count(catalog.OSTypeIs(Linux))
}

// BSDCount returns the number of BSD rows.
func BSDCount(ds *catalog.Dataset) int {
	return ds.Count(catalog.OSTypeIs(BSD))
}

// OtherCount returns the number of rows neither Linux nor BSD,
// including rows without OS type.
func OtherCount(ds *catalog.Dataset) int {
	return ds.Count(catalog.Not(catalog.OSTypeIs(Linux)), catalog.Not(catalog.OSTypeIs(BSD)))
}

// BuildCounts computes all counts.
func BuildCounts(ds *catalog.Dataset) Counts {
	return Counts{
		Total: TotalCount(ds),
		Linux: LinuxCount(ds),
		BSD:   BSDCount(ds),
		Other: OtherCount(ds),
	}
}
