// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTable is wrapped in a LoadError when the table does not exist.
	ErrMissingTable = errors.New("missing table")
	// ErrMissingColumn is wrapped in a LoadError when a column is absent.
	ErrMissingColumn = errors.New("missing column")
)

// Columns are the columns expected in the store, in order.
var Columns = []string{"Name", "OS Type", "Based on", "Architecture", "Desktop", "Popularity", "Origin"}

// LoadError is returned when the catalog cannot be read from the store.
// It is fatal: no partial dataset is produced.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load catalog from %s: %s", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WarningKind is the kind of a normalization warning.
type WarningKind string

const (
	// WarningRank is raised when the rank cannot be parsed.
	WarningRank WarningKind = "rank"
	// WarningHits is raised when the daily hits cannot be parsed.
	WarningHits WarningKind = "hits"
	// WarningParent is raised when a parent list contains an empty entry.
	WarningParent WarningKind = "parent"
)

// Warning signals a row degraded during normalization. It is never
// fatal.
type Warning struct {
	Kind  WarningKind
	Name  string
	Value string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: cannot parse %s %q", w.Name, w.Kind, w.Value)
}

// WarningFunc receives normalization warnings.
type WarningFunc func(Warning)
