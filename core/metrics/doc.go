// Package metrics defines the sinks that observe schedule generation and
// saved-section changes. Sinks like PromSink and InfluxSink live in
// infra/metrics and register themselves by name; NewMetricsSink builds
// them from configuration and returns a MultiSink when several are listed.
package metrics
