// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package console

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (c *Component) widgetCountsHandlerFunc(gc *gin.Context) {
	gc.JSON(http.StatusOK, c.views.Counts())
}

func (c *Component) widgetGeoHandlerFunc(gc *gin.Context) {
	gc.JSON(http.StatusOK, c.views.Geo())
}

func (c *Component) widgetArchitecturesHandlerFunc(gc *gin.Context) {
	gc.JSON(http.StatusOK, c.views.Architectures())
}

func (c *Component) widgetDesktopsHandlerFunc(gc *gin.Context) {
	gc.JSON(http.StatusOK, c.views.Desktops())
}

func (c *Component) widgetDegreesHandlerFunc(gc *gin.Context) {
	gc.JSON(http.StatusOK, c.views.Degrees())
}

func (c *Component) widgetSankeyHandlerFunc(gc *gin.Context) {
	gc.JSON(http.StatusOK, c.views.Sankey())
}

func (c *Component) widgetMapHandlerFunc(gc *gin.Context) {
	choropleth, ok := c.views.Choropleth()
	if !ok {
		gc.JSON(http.StatusNotFound, gin.H{"message": "No geometry configured."})
		return
	}
	gc.JSON(http.StatusOK, choropleth)
}

func (c *Component) widgetMapGeometryHandlerFunc(gc *gin.Context) {
	geometry, ok := c.views.Geometry()
	if !ok {
		gc.JSON(http.StatusNotFound, gin.H{"message": "No geometry configured."})
		return
	}
	gc.JSON(http.StatusOK, geometry)
}
