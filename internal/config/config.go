// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package config loads and validates ForkFinder configuration.
//
// Sources are merged in priority order: struct defaults, then an optional
// YAML config file, then FORKFINDER_* environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration object.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`
	Google GoogleConfig `koanf:"google"`
	Yelp   YelpConfig   `koanf:"yelp"`
	Search SearchConfig `koanf:"search"`
	Mongo  MongoConfig  `koanf:"mongo"`
	Redis  RedisConfig  `koanf:"redis"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// PublicURL is the externally reachable base used when minting
	// session sharing links.
	PublicURL string `koanf:"public_url"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// GoogleConfig configures the maps-style provider and the geocoder.
type GoogleConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"` // override for tests
	Timeout time.Duration `koanf:"timeout"`
}

// YelpConfig configures the reviews-style provider.
type YelpConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"` // override for tests
	Timeout time.Duration `koanf:"timeout"`
}

// SearchConfig configures the aggregation pipeline.
type SearchConfig struct {
	DefaultRadius int `koanf:"default_radius"` // meters
	DefaultLimit  int `koanf:"default_limit"`

	// ProviderTimeout bounds each provider call independently so one slow
	// upstream cannot stall the merge.
	ProviderTimeout time.Duration `koanf:"provider_timeout"`

	// FailOnEmpty makes aggregation return an error when every provider
	// fails, instead of an empty result set.
	FailOnEmpty bool `koanf:"fail_on_empty"`
}

// MongoConfig configures the session document store.
type MongoConfig struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

// RedisConfig configures the session result cache.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Validate checks required fields and value ranges after loading.
func (c *Config) Validate() error {
	if c.Google.APIKey == "" {
		return fmt.Errorf("google.api_key is required")
	}
	if c.Yelp.APIKey == "" {
		return fmt.Errorf("yelp.api_key is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("search.default_limit must be positive, got %d", c.Search.DefaultLimit)
	}
	if c.Search.DefaultRadius <= 0 {
		return fmt.Errorf("search.default_radius must be positive, got %d", c.Search.DefaultRadius)
	}
	if c.Search.ProviderTimeout <= 0 {
		return fmt.Errorf("search.provider_timeout must be positive, got %s", c.Search.ProviderTimeout)
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	return nil
}
