// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package database

import "dwexplorer/catalog"

// distro is a row of the catalog table. Column names contain spaces.
type distro struct {
	Name         *string `gorm:"column:Name"`
	OSType       *string `gorm:"column:OS Type"`
	BasedOn      *string `gorm:"column:Based on"`
	Architecture *string `gorm:"column:Architecture"`
	Desktop      *string `gorm:"column:Desktop"`
	Popularity   *string `gorm:"column:Popularity"`
	Origin       *string `gorm:"column:Origin"`
}

func (d distro) raw() catalog.RawRecord {
	return catalog.RawRecord{
		Name:         d.Name,
		OSType:       d.OSType,
		BasedOn:      d.BasedOn,
		Architecture: d.Architecture,
		Desktop:      d.Desktop,
		Popularity:   d.Popularity,
		Origin:       d.Origin,
	}
}

func fromRaw(r catalog.RawRecord) distro {
	return distro{
		Name:         r.Name,
		OSType:       r.OSType,
		BasedOn:      r.BasedOn,
		Architecture: r.Architecture,
		Desktop:      r.Desktop,
		Popularity:   r.Popularity,
		Origin:       r.Origin,
	}
}
