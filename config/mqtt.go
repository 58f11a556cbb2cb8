package config

import (
	"fmt"

	"github.com/kilianp07/sectionplanner/infra/mqtt"
)

// MQTTConfig enables publishing saved-section changes to a broker.
type MQTTConfig struct {
	Enabled     bool `json:"enabled"`
	mqtt.Config `json:",squash"`
}

// SetDefaults applies sane defaults.
func (c *MQTTConfig) SetDefaults() {
	if c.Topic == "" {
		c.Topic = mqtt.DefaultTopic
	}
	if c.ClientID == "" {
		c.ClientID = "sectionplanner"
	}
}

// Validate checks mandatory fields.
func (c MQTTConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("qos must be 0, 1 or 2")
	}
	return nil
}
