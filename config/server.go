package config

import "fmt"

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Address string `json:"address"`
	// Token enables bearer authentication on every API route when set.
	Token      string  `json:"token"`
	RatePerSec float64 `json:"rate_per_sec"`
	Burst      int     `json:"burst"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.RatePerSec == 0 {
		c.RatePerSec = 5
	}
	if c.Burst == 0 {
		c.Burst = 10
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	if c.RatePerSec < 0 || c.Burst < 0 {
		return fmt.Errorf("rate_per_sec and burst must not be negative")
	}
	return nil
}
