package config

import (
	"fmt"
	"time"
)

// StorageConfig selects the saved-section store.
type StorageConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *StorageConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Path == "" {
		c.Path = "sections.db"
	}
}

// Validate checks mandatory fields.
func (c StorageConfig) Validate() error {
	if c.Backend != "memory" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	return nil
}

// CacheConfig selects the generated-schedule cache.
type CacheConfig struct {
	// Backend is "none", "memory" or "redis".
	Backend    string `json:"backend"`
	Address    string `json:"address"`
	Password   string `json:"password"`
	DB         int    `json:"db"`
	MaxEntries int    `json:"max_entries"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// SetDefaults applies sane defaults.
func (c *CacheConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Backend == "redis" && c.Address == "" {
		c.Address = "localhost:6379"
	}
	if c.TTLSeconds == 0 {
		c.TTLSeconds = 3600
	}
}

// Validate checks mandatory fields.
func (c CacheConfig) Validate() error {
	switch c.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.TTLSeconds < 0 {
		return fmt.Errorf("ttl_seconds must not be negative")
	}
	return nil
}

// TTL returns the entry lifetime.
func (c CacheConfig) TTL() time.Duration { return time.Duration(c.TTLSeconds) * time.Second }
