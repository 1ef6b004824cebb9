// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package httpserver

import (
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/gin-gonic/gin"

	"dwexplorer/common/reporter"
)

// CacheByRequestPath is a middleware caching responses using the
// request path as key. A zero expiration uses the configured TTL.
func (c *Component) CacheByRequestPath(expire time.Duration) gin.HandlerFunc {
	if expire == 0 {
		expire = c.config.Cache.TTL
	}
	return cache.Cache(c.cacheStore, expire,
		cache.WithLogger(cacheLogger{c.r}),
		cache.WithOnHitCache(func(gc *gin.Context) {
			c.metrics.cacheHit.WithLabelValues(gc.Request.URL.Path, gc.Request.Method).Inc()
		}),
		cache.WithOnMissCache(func(gc *gin.Context) {
			c.metrics.cacheMiss.WithLabelValues(gc.Request.URL.Path, gc.Request.Method).Inc()
		}),
		cache.WithPrefixKey("cache-"),
		cache.WithCacheStrategyByRequest(func(gc *gin.Context) (bool, cache.Strategy) {
			return true, cache.Strategy{CacheKey: gc.Request.URL.Path}
		}),
	)
}

type cacheLogger struct {
	r *reporter.Reporter
}

func (cl cacheLogger) Errorf(msg string, args ...any) {
	cl.r.Error().Msgf(msg, args...)
}
