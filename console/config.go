// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package console

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dwexplorer/catalog"
)

// Configuration describes the configuration for the console component.
type Configuration struct {
	// Version is the version to display to the user.
	Version string `yaml:"-"`
	// TopN is the number of bars displayed in histograms.
	TopN int `validate:"min=1"`
	// Geometry is an optional GeoJSON file with country boundaries.
	// Feature IDs should be alpha-3 codes.
	Geometry string `validate:"omitempty,file"`
	// CacheTTL is the lifetime of cached widgets.
	CacheTTL time.Duration `validate:"min=1s"`
}

// DefaultConfiguration represents the default configuration for the console component.
func DefaultConfiguration() Configuration {
	return Configuration{
		TopN:     20,
		CacheTTL: 10 * time.Minute,
	}
}

func (c *Component) configHandlerFunc(gc *gin.Context) {
	patterns := make([]string, 0, len(catalog.ParentPatterns))
	for _, pp := range catalog.ParentPatterns {
		patterns = append(patterns, pp.Description)
	}
	gc.JSON(http.StatusOK, gin.H{
		"version":         c.config.Version,
		"top-n":           c.views.TopN(),
		"loaded-at":       c.loadedAt,
		"rows":            c.views.Dataset().Len(),
		"source":          c.d.Database.Source(),
		"rules":           c.normalizer.Rules(),
		"parent-patterns": patterns,
		"map":             c.geometry != nil,
	})
}
