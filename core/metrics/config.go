package metrics

import "github.com/kilianp07/sectionplanner/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks          []factory.ModuleConfig `json:"sinks" yaml:"sinks"`
	PrometheusPort string                 `json:"prometheus_port" yaml:"prometheus_port"`
}
