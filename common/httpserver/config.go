// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/chenyahui/gin-cache/persist"
	"github.com/go-redis/redis/v8"
)

// Configuration describes the configuration for the HTTP server.
type Configuration struct {
	// Listen defines the listening string to listen to.
	Listen string `validate:"required,listen"`
	// Cache configuration
	Cache CacheConfiguration
}

// CacheConfiguration describes the configuration of the response cache.
type CacheConfiguration struct {
	// Type is the cache backend: memory or redis
	Type string `validate:"oneof=memory redis"`
	// TTL is the default lifetime of cached entries
	TTL time.Duration `validate:"min=1s"`
	// Redis is used when Type is redis
	Redis RedisCacheConfiguration
}

// RedisCacheConfiguration is the configuration for a Redis cache.
type RedisCacheConfiguration struct {
	// Protocol to connect with
	Protocol string `validate:"oneof=tcp unix"`
	// Server to connect to (with port)
	Server string `validate:"required"`
	// Optional username
	Username string
	// Optional password
	Password string
	// Database to connect to
	DB int `validate:"min=0"`
}

// DefaultConfiguration is the default configuration of the HTTP server.
func DefaultConfiguration() Configuration {
	return Configuration{
		Listen: "0.0.0.0:8080",
		Cache: CacheConfiguration{
			Type: "memory",
			TTL:  5 * time.Minute,
			Redis: RedisCacheConfiguration{
				Protocol: "tcp",
				Server:   "127.0.0.1:6379",
			},
		},
	}
}

// newStore creates the cache store matching the configuration.
func (cc CacheConfiguration) newStore(ctx context.Context) (persist.CacheStore, error) {
	switch cc.Type {
	case "", "memory":
		return persist.NewMemoryStore(cc.TTL), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Network:  cc.Redis.Protocol,
			Addr:     cc.Redis.Server,
			Username: cc.Redis.Username,
			Password: cc.Redis.Password,
			DB:       cc.Redis.DB,
		})
		if _, err := client.Ping(ctx).Result(); err != nil {
			client.Close()
			return nil, fmt.Errorf("cannot ping Redis server: %w", err)
		}
		return persist.NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cc.Type)
	}
}
